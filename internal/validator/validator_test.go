package validator

import (
	"strings"
	"testing"
)

func TestCheck_EmptyTargetLang(t *testing.T) {
	v := New()

	ok, err := v.Check("Some translated text", "")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected pass for empty targetLang")
	}
}

func TestCheck_EmptyTranslation(t *testing.T) {
	v := New()

	ok, err := v.Check("", "en")
	if err == nil {
		t.Error("expected error for empty translation")
	}
	if ok {
		t.Error("expected failure for empty translation")
	}
}

func TestCheck_WhitespaceOnlyTranslation(t *testing.T) {
	v := New()

	ok, err := v.Check("   ", "en")
	if err == nil {
		t.Error("expected error for whitespace-only translation")
	}
	if ok {
		t.Error("expected failure for whitespace-only translation")
	}
}

func TestCheck_ShortText(t *testing.T) {
	v := New()

	ok, err := v.Check("Hi", "en") // below the detection threshold
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected pass for short text (below threshold)")
	}
}

func TestCheck_MatchingLanguage(t *testing.T) {
	v := New()

	text := "This is a longer piece of text that should be detected as English."
	ok, err := v.Check(text, "en")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected pass when detecting English as English")
	}
}

func TestCheck_MismatchedLanguage(t *testing.T) {
	v := New()

	englishText := "This is a longer piece of text that should be detected as English."
	ok, err := v.Check(englishText, "uk")
	if err == nil {
		t.Fatal("expected error for mismatched language")
	}
	if ok {
		t.Error("expected failure when detecting English but expecting Ukrainian")
	}
	if !strings.Contains(err.Error(), "confidence") {
		t.Errorf("expected confidence in the mismatch message, got %q", err)
	}
}

func TestCheck_UkrainianText(t *testing.T) {
	v := New()

	ukrainianText := "Це є тестовий текст українською мовою для перевірки роботи перекладача."
	ok, err := v.Check(ukrainianText, "uk")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected pass when detecting Ukrainian as Ukrainian")
	}
}

func TestCheck_CaseInsensitiveTargetLang(t *testing.T) {
	v := New()

	text := "This is a longer piece of text that should be detected as English."
	ok, err := v.Check(text, "EN")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected pass for case-insensitive targetLang")
	}
}

func TestCheck_TargetLangAsFullName(t *testing.T) {
	v := New()

	text := "This is a longer piece of text that should be detected as English."
	ok, err := v.Check(text, "English")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected pass when targetLang is a full language name")
	}
}
