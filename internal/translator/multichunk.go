package translator

import (
	"context"
	"strings"
)

// Markers framing the chunk under translation inside the full-document
// window. They never appear in model output, only in prompts.
const (
	chunkStart = "<TRANSLATE_THIS>"
	chunkEnd   = "</TRANSLATE_THIS>"
)

// window rebuilds the document with chunk i framed by the markers and every
// other chunk kept verbatim.
func window(chunks []string, i int) string {
	var b strings.Builder
	b.WriteString(strings.Join(chunks[:i], ""))
	b.WriteString(chunkStart)
	b.WriteString(chunks[i])
	b.WriteString(chunkEnd)
	b.WriteString(strings.Join(chunks[i+1:], ""))
	return b.String()
}

// translateChunks runs the three stages over every chunk in order and
// returns the per-chunk results, index-aligned with the input. Chunks are
// processed strictly sequentially; the first failed stage aborts the whole
// run.
func (t *Translator) translateChunks(ctx context.Context, req Request, chunks []string) ([]string, error) {
	finals := make([]string, len(chunks))
	for i, chunk := range chunks {
		t.logf("translating chunk %d/%d", i+1, len(chunks))
		doc := window(chunks, i)

		system, user := buildChunkInitialPrompts(req, doc, chunk)
		draft, err := t.complete(ctx, system, user)
		if err != nil {
			return nil, err
		}

		system, user = buildChunkReflectionPrompts(req, doc, chunk, draft)
		critique, err := t.complete(ctx, system, user)
		if err != nil {
			return nil, err
		}

		system, user = buildChunkImprovementPrompts(req, doc, chunk, draft, critique)
		final, err := t.complete(ctx, system, user)
		if err != nil {
			return nil, err
		}
		finals[i] = final
	}
	return finals, nil
}
