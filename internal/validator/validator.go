// Package validator checks that a finished translation is written in the
// expected target language.
//
// The check is diagnostic: the translate command reports a mismatch as a
// warning and still delivers the result, since detection on translated text
// is heuristic.
package validator

import (
	"fmt"
	"strings"

	"github.com/perelab/tolmach/internal/detector"
	"github.com/perelab/tolmach/internal/langname"
)

// minCheckLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass unchecked.
const minCheckLength = 20

// Validator detects the language of translation output and compares it
// against the requested target. The underlying detector is expensive to
// build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

func New() *Validator {
	return &Validator{det: detector.New()}
}

// Check returns true when translation appears to be written in targetLang,
// given as an ISO 639-1 code or an English language name, compared
// case-insensitively.
//
// Short texts and texts whose language cannot be determined pass without
// error. When the detected language differs, the returned error names both
// languages and the detector's confidence.
func (v *Validator) Check(translation, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translation)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}

	if len([]rune(text)) < minCheckLength {
		return true, nil
	}

	detected, confidence, ok := v.det.DetectWithConfidence(text)
	if !ok {
		// Ambiguous language, nothing to compare against.
		return true, nil
	}

	if !strings.EqualFold(detected, targetLang) &&
		!strings.EqualFold(langname.Name(detected), targetLang) {
		return false, fmt.Errorf("expected %s but detected %s (confidence %.2f)",
			targetLang, detected, confidence)
	}

	return true, nil
}
