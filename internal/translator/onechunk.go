package translator

import "context"

// translateSingle runs the three stages over the whole input.
func (t *Translator) translateSingle(ctx context.Context, req Request) (string, error) {
	system, user := buildInitialPrompts(req)
	draft, err := t.complete(ctx, system, user)
	if err != nil {
		return "", err
	}

	system, user = buildReflectionPrompts(req, draft)
	critique, err := t.complete(ctx, system, user)
	if err != nil {
		return "", err
	}

	system, user = buildImprovementPrompts(req, draft, critique)
	return t.complete(ctx, system, user)
}
