package translator

import (
	"fmt"
	"sort"
	"strings"
)

// Prompt builders for the three pipeline stages. Each returns a (system,
// user) message pair. Supplied texts are framed between explicit markers so
// the model cannot confuse instructions with content.

func buildInitialPrompts(req Request) (string, string) {
	system := fmt.Sprintf("You are an expert linguist, specializing in translation from %s to %s.",
		req.SourceLang, req.TargetLang)
	system += glossaryBlock(req.Glossary)

	user := fmt.Sprintf(`Translate the following text from %s to %s.
Do NOT include any explanations, comments, or additional text.

===== SOURCE TEXT BEGIN =====
%s
===== SOURCE TEXT END =====

Output ONLY the translation, nothing else.`,
		req.SourceLang, req.TargetLang, req.Text)

	return system, user
}

func buildReflectionPrompts(req Request, draft string) (string, string) {
	system := fmt.Sprintf("You are an expert linguist specializing in translation from %s to %s. "+
		"You will be provided with a source text and its translation and your goal is to improve the translation.",
		req.SourceLang, req.TargetLang)

	user := fmt.Sprintf(`Carefully read the source text and its draft translation from %s to %s, then write a list of specific, constructive suggestions for improving the translation.
%s
===== SOURCE TEXT BEGIN =====
%s
===== SOURCE TEXT END =====

===== DRAFT TRANSLATION BEGIN =====
%s
===== DRAFT TRANSLATION END =====

When writing suggestions, pay attention to whether there are ways to improve the translation's:
1. Accuracy: correct errors of addition, mistranslation, omission, or untranslated text.
2. Fluency: apply %s grammar, spelling and punctuation rules, and remove unnecessary repetitions.
3. Style: make the translation reflect the style of the source text and its cultural context.
4. Terminology: keep terminology use consistent with the source text domain, and use equivalent idioms in %s.

Output ONLY the list of suggestions, nothing else.`,
		req.SourceLang, req.TargetLang, countryClause(req),
		req.Text, draft,
		req.TargetLang, req.TargetLang)

	return system, user
}

func buildImprovementPrompts(req Request, draft, critique string) (string, string) {
	system := fmt.Sprintf("You are an expert linguist, specializing in translation editing from %s to %s.",
		req.SourceLang, req.TargetLang)

	user := fmt.Sprintf(`Your task is to edit a translation from %s to %s, taking into account the expert suggestions listed below.

===== SOURCE TEXT BEGIN =====
%s
===== SOURCE TEXT END =====

===== DRAFT TRANSLATION BEGIN =====
%s
===== DRAFT TRANSLATION END =====

===== EXPERT SUGGESTIONS BEGIN =====
%s
===== EXPERT SUGGESTIONS END =====

Edit the draft so that the result is accurate, fluent, faithful to the style of the source text, and consistent in its terminology.

Output ONLY the new translation, nothing else.`,
		req.SourceLang, req.TargetLang, req.Text, draft, critique)

	return system, user
}

// Multi-chunk variants. The window is the whole document with the current
// chunk framed between chunkStart and chunkEnd; the model acts only on the
// framed span.

func buildChunkInitialPrompts(req Request, window, chunk string) (string, string) {
	system := fmt.Sprintf("You are an expert linguist, specializing in translation from %s to %s.",
		req.SourceLang, req.TargetLang)
	system += glossaryBlock(req.Glossary)

	user := fmt.Sprintf(`Your task is to translate part of a document from %s to %s.
The full document is given below; translate ONLY the part between %s and %s. Use the rest of the document as context, but do not translate any other part.

===== FULL DOCUMENT BEGIN =====
%s
===== FULL DOCUMENT END =====

To reiterate, translate only this part, shown here again:

===== PART TO TRANSLATE BEGIN =====
%s
===== PART TO TRANSLATE END =====

Output ONLY the translation of the indicated part, nothing else.`,
		req.SourceLang, req.TargetLang, chunkStart, chunkEnd, window, chunk)

	return system, user
}

func buildChunkReflectionPrompts(req Request, window, chunk, draft string) (string, string) {
	system := fmt.Sprintf("You are an expert linguist specializing in translation from %s to %s. "+
		"You will be provided with a source text and its translation and your goal is to improve the translation.",
		req.SourceLang, req.TargetLang)

	user := fmt.Sprintf(`Your task is to carefully read part of a document and a draft translation of that part from %s to %s, then write a list of specific, constructive suggestions for improving the translation.
The part in question is between %s and %s in the document below; the rest of the document is context only.
%s
===== FULL DOCUMENT BEGIN =====
%s
===== FULL DOCUMENT END =====

===== PART TO TRANSLATE BEGIN =====
%s
===== PART TO TRANSLATE END =====

===== DRAFT TRANSLATION BEGIN =====
%s
===== DRAFT TRANSLATION END =====

When writing suggestions, pay attention to whether there are ways to improve the translation's:
1. Accuracy: correct errors of addition, mistranslation, omission, or untranslated text.
2. Fluency: apply %s grammar, spelling and punctuation rules, and remove unnecessary repetitions.
3. Style: make the translation reflect the style of the source text and its cultural context.
4. Terminology: keep terminology use consistent with the source text domain, and use equivalent idioms in %s.

Output ONLY the list of suggestions, nothing else.`,
		req.SourceLang, req.TargetLang, chunkStart, chunkEnd, countryClause(req),
		window, chunk, draft,
		req.TargetLang, req.TargetLang)

	return system, user
}

func buildChunkImprovementPrompts(req Request, window, chunk, draft, critique string) (string, string) {
	system := fmt.Sprintf("You are an expert linguist, specializing in translation editing from %s to %s.",
		req.SourceLang, req.TargetLang)

	user := fmt.Sprintf(`Your task is to edit the translation of one part of a document from %s to %s, taking into account the expert suggestions listed below.
The part in question is between %s and %s in the document below; the rest of the document is context only.

===== FULL DOCUMENT BEGIN =====
%s
===== FULL DOCUMENT END =====

===== PART TO TRANSLATE BEGIN =====
%s
===== PART TO TRANSLATE END =====

===== DRAFT TRANSLATION BEGIN =====
%s
===== DRAFT TRANSLATION END =====

===== EXPERT SUGGESTIONS BEGIN =====
%s
===== EXPERT SUGGESTIONS END =====

Edit the draft so that the result is accurate, fluent, faithful to the style of the source text, and consistent in its terminology.

Output ONLY the new translation of the indicated part, nothing else.`,
		req.SourceLang, req.TargetLang, chunkStart, chunkEnd,
		window, chunk, draft, critique)

	return system, user
}

// countryClause asks for the regional variant of the target language. It is
// used by the reflection stage only, and only when a country is given.
func countryClause(req Request) string {
	if req.Country == "" {
		return ""
	}
	return fmt.Sprintf("\nThe final style and tone of the translation should match the style of %s colloquially spoken in %s.\n",
		req.TargetLang, req.Country)
}

// glossaryBlock pins exact term translations in the system role. Terms are
// sorted so the same glossary always produces the same prompt.
func glossaryBlock(glossary map[string]string) string {
	if len(glossary) == 0 {
		return ""
	}

	terms := make([]string, 0, len(glossary))
	for src := range glossary {
		terms = append(terms, src)
	}
	sort.Strings(terms)

	var sb strings.Builder
	sb.WriteString("\n\nTERMINOLOGY (use these exact translations):\n")
	for _, src := range terms {
		sb.WriteString(fmt.Sprintf("  %s → %s\n", src, glossary[src]))
	}
	return sb.String()
}
