// Package postprocess removes common LLM artifacts from model output.
//
// Every response in the translation pipeline passes through Clean before it
// is used downstream: initial drafts, reflection critiques, and improved
// translations alike.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes LLM artifacts from text in four phases and returns the
// trimmed result:
//  1. Thinking / reasoning block removal
//  2. Instruction echo removal (prompt leakage)
//  3. Chunk marker removal (delimiter leakage)
//  4. Quote wrapping removal
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeInstructionEchoes(text)
	text = removeMarkerEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// --- Phase 1: thinking blocks ---

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
// Flags: i = case-insensitive, s = dot matches newline.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// --- Phase 2: instruction echoes ---

// echoPatterns match introductory phrases that LLMs sometimes prepend even
// when instructed not to. The translation variants cover the initial and
// improvement stages, the suggestion variants cover the reflection stage.
// Each pattern is anchored to the start of the string and requires a colon
// to reduce false positives on legitimate content.
var echoPatterns = []*regexp.Regexp{
	// "Here is / Here's [the] [improved|new|translated] translation:"
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:improved |new |translated )?(?:translation|text)\s*:`),
	// "[The] [improved|new] [translation|translated text]:"
	regexp.MustCompile(`(?i)^(?:the )?(?:improved |new )?(?:translation|translated text)\s*:`),
	// "Certainly / Sure / Of course[,] here is [the] translation:"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:improved |new |translated )?(?:translation|text)\s*:`),
	// "Here are [my|the] suggestions:" / "[My|The] suggestions:" / "Suggestions:"
	regexp.MustCompile(`(?i)^here are(?: my| the)? (?:specific )?suggestions(?: for improving the translation)?\s*:`),
	regexp.MustCompile(`(?i)^(?:my |the )?suggestions\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// --- Phase 3: chunk markers ---

// markerRe matches the delimiters that frame a chunk inside its document
// window. Models occasionally copy them from the prompt around the
// translated span; they are never legitimate output.
var markerRe = regexp.MustCompile(`(?i)</?TRANSLATE_THIS>`)

func removeMarkerEchoes(text string) string {
	if !strings.Contains(strings.ToUpper(text), "TRANSLATE_THIS") {
		return text
	}
	return strings.TrimSpace(markerRe.ReplaceAllString(text, ""))
}

// --- Phase 4: quote wrapping ---

// removeQuoteWrapping strips a matching pair of outer quotes when the entire
// text is wrapped in them (a common LLM artifact).  Supported pairs:
//
//	"…"  '…'  «…»  "…"  '…'
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
