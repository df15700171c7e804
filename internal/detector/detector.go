package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector resolves the language a text is written in. Building the
// underlying statistical models is expensive; construct once and reuse.
type Detector struct {
	det lingua.LanguageDetector
}

func New() *Detector {
	det := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{det: det}
}

// Detect returns the most likely language of text.
func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.det.DetectLanguageOf(text)
}

// DetectCode returns the lowercase ISO 639-1 code of the detected language,
// in the form the translate command takes as a source language flag.
func (d *Detector) DetectCode(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// DetectWithConfidence returns the detected code together with the
// detector's confidence in it, in the range [0, 1].
func (d *Detector) DetectWithConfidence(text string) (string, float64, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", 0, false
	}
	code := strings.ToLower(lang.IsoCode639_1().String())
	return code, d.det.ComputeLanguageConfidence(text, lang), true
}
