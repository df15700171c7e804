// Package langname resolves language identifiers to English display names
// for use in prompts, where "Translate from English to Ukrainian" reads
// better than a pair of ISO codes.
package langname

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var english = display.English.Languages()

// Name returns the English display name for a BCP 47 language code ("uk"
// becomes "Ukrainian"). Inputs that do not parse as a code, such as a
// language name already typed out in full, are returned unchanged.
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := english.Name(tag); name != "" {
		return name
	}
	return code
}
