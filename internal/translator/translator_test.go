package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/perelab/tolmach/internal/llm"
)

// mockModel records every exchange and answers from completeFunc, or with
// a fixed string when none is set.
type mockModel struct {
	completeFunc func(call int, messages []llm.Message) (string, error)
	callCount    atomic.Int32
	calls        [][]llm.Message
}

func (m *mockModel) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	call := int(m.callCount.Add(1))
	m.calls = append(m.calls, messages)
	if m.completeFunc != nil {
		return m.completeFunc(call, messages)
	}
	return "mock translation", nil
}

// userContent returns the user message of call n (1-based).
func (m *mockModel) userContent(t *testing.T, n int) string {
	t.Helper()
	if n > len(m.calls) {
		t.Fatalf("call %d not recorded, only %d calls", n, len(m.calls))
	}
	msgs := m.calls[n-1]
	if len(msgs) != 2 || msgs[0].Role != llm.RoleSystem || msgs[1].Role != llm.RoleUser {
		t.Fatalf("call %d: expected system+user pair, got %+v", n, msgs)
	}
	return msgs[1].Content
}

func (m *mockModel) systemContent(t *testing.T, n int) string {
	t.Helper()
	if n > len(m.calls) {
		t.Fatalf("call %d not recorded, only %d calls", n, len(m.calls))
	}
	return m.calls[n-1][0].Content
}

func newTranslator(t *testing.T, m llm.Model, budget int) *Translator {
	t.Helper()
	tr, err := New(m, Config{MaxTokensPerChunk: budget})
	if err != nil {
		t.Fatalf("failed to build translator: %v", err)
	}
	return tr
}

// --- single-chunk path ---

func TestTranslate_SingleChunk(t *testing.T) {
	m := &mockModel{
		completeFunc: func(call int, messages []llm.Message) (string, error) {
			switch call {
			case 1:
				return "Hello world.", nil
			case 2:
				return "Add the missing comma after the greeting.", nil
			default:
				return "Hello, world.", nil
			}
		},
	}
	tr := newTranslator(t, m, 1000)

	out, err := tr.Translate(context.Background(), Request{
		SourceLang: "French",
		TargetLang: "English",
		Text:       "Bonjour le monde.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello, world." {
		t.Errorf("expected improved translation, got %q", out)
	}
	if n := m.callCount.Load(); n != 3 {
		t.Fatalf("expected exactly 3 model calls, got %d", n)
	}

	// Stage order: source text, then draft, then draft+critique.
	if !strings.Contains(m.userContent(t, 1), "Bonjour le monde.") {
		t.Error("initial prompt should carry the source text")
	}
	if !strings.Contains(m.userContent(t, 2), "Hello world.") {
		t.Error("reflection prompt should carry the draft")
	}
	improve := m.userContent(t, 3)
	if !strings.Contains(improve, "Hello world.") {
		t.Error("improvement prompt should carry the draft")
	}
	if !strings.Contains(improve, "Add the missing comma after the greeting.") {
		t.Error("improvement prompt should carry the critique")
	}
}

func TestTranslate_SingleChunk_NoChunkMarkers(t *testing.T) {
	m := &mockModel{}
	tr := newTranslator(t, m, 1000)

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "uk", Text: "Hello.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for n := 1; n <= 3; n++ {
		if strings.Contains(m.userContent(t, n), chunkStart) {
			t.Errorf("call %d: single-chunk prompt must not carry chunk markers", n)
		}
	}
}

func TestTranslate_EmptyText(t *testing.T) {
	m := &mockModel{
		completeFunc: func(call int, messages []llm.Message) (string, error) {
			return "", nil
		},
	}
	tr := newTranslator(t, m, 1000)

	out, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "uk", Text: "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty result, got %q", out)
	}
	if n := m.callCount.Load(); n != 3 {
		t.Errorf("expected 3 calls on the single-chunk path, got %d", n)
	}
}

// --- multi-chunk path ---

func TestTranslate_MultiChunk(t *testing.T) {
	m := &mockModel{
		completeFunc: func(call int, messages []llm.Message) (string, error) {
			if call%3 == 0 {
				return fmt.Sprintf("[part %d]", call/3), nil
			}
			return "intermediate", nil
		},
	}
	tr := newTranslator(t, m, 100)

	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 30)
	total := tr.codec.Count(text)
	if total <= tr.budget {
		t.Fatalf("test text too small: %d tokens", total)
	}
	numChunks := (total + tr.budget - 1) / tr.budget
	if numChunks < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", numChunks)
	}

	out, err := tr.Translate(context.Background(), Request{
		SourceLang: "English", TargetLang: "Spanish", Text: text,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := m.callCount.Load(); n != int32(3*numChunks) {
		t.Errorf("expected %d model calls for %d chunks, got %d", 3*numChunks, numChunks, n)
	}

	var want strings.Builder
	for i := 1; i <= numChunks; i++ {
		fmt.Fprintf(&want, "[part %d]", i)
	}
	if out != want.String() {
		t.Errorf("expected in-order concatenation %q, got %q", want.String(), out)
	}
}

func TestTranslate_MultiChunk_WindowedPrompts(t *testing.T) {
	m := &mockModel{}
	tr := newTranslator(t, m, 50)

	text := strings.Repeat("alpha beta gamma delta epsilon. ", 20)
	if tr.codec.Count(text) <= tr.budget {
		t.Fatalf("test text too small")
	}

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "de", Text: text,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every stage of the first chunk sees the framed document window.
	for n := 1; n <= 3; n++ {
		user := m.userContent(t, n)
		if !strings.Contains(user, chunkStart) || !strings.Contains(user, chunkEnd) {
			t.Errorf("call %d: expected chunk markers in prompt", n)
		}
	}
}

func TestTranslate_AtBudgetTakesChunkPath(t *testing.T) {
	m := &mockModel{}
	tr := newTranslator(t, m, 1000)

	text := "Short text."
	tr.budget = tr.codec.Count(text) // count == budget is not under budget

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "fr", Text: text,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := m.callCount.Load(); n != 3 {
		t.Fatalf("expected 3 calls for a single chunk, got %d", n)
	}
	if !strings.Contains(m.userContent(t, 1), chunkStart) {
		t.Error("expected the chunked path at exactly the budget")
	}
}

// --- failure handling ---

func TestTranslate_SecondStageFailure(t *testing.T) {
	m := &mockModel{
		completeFunc: func(call int, messages []llm.Message) (string, error) {
			if call == 2 {
				return "", errors.New("status 500")
			}
			return "fine", nil
		},
	}
	tr := newTranslator(t, m, 1000)

	out, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "uk", Text: "Hello.",
	})
	if err == nil {
		t.Fatal("expected error when a stage fails")
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("expected *ServiceError, got %T", err)
	}
	if out != "" {
		t.Errorf("expected no partial result, got %q", out)
	}
	if n := m.callCount.Load(); n != 2 {
		t.Errorf("expected the third stage to never run, got %d calls", n)
	}
}

func TestTranslate_MultiChunk_FailureAborts(t *testing.T) {
	m := &mockModel{
		completeFunc: func(call int, messages []llm.Message) (string, error) {
			if call == 5 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		},
	}
	tr := newTranslator(t, m, 50)

	text := strings.Repeat("one two three four five six seven eight nine ten. ", 20)
	if tr.codec.Count(text) <= 2*tr.budget {
		t.Fatalf("test text too small for at least 2 chunks")
	}

	out, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "pl", Text: text,
	})
	if err == nil {
		t.Fatal("expected error when a chunk stage fails")
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Errorf("expected *ServiceError, got %T", err)
	}
	if out != "" {
		t.Errorf("expected no partial result, got %q", out)
	}
	if n := m.callCount.Load(); n != 5 {
		t.Errorf("expected processing to stop at call 5, got %d calls", n)
	}
}

func TestTranslate_ServiceErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	m := &mockModel{
		completeFunc: func(call int, messages []llm.Message) (string, error) {
			return "", cause
		},
	}
	tr := newTranslator(t, m, 1000)

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "uk", Text: "Hello.",
	})
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause to survive, got %v", err)
	}
}

// --- locale and glossary ---

func TestTranslate_CountryClauseOnlyInReflection(t *testing.T) {
	m := &mockModel{}
	tr := newTranslator(t, m, 1000)

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "English",
		TargetLang: "Spanish",
		Text:       "Good morning.",
		Country:    "Mexico",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(m.userContent(t, 1), "Mexico") || strings.Contains(m.systemContent(t, 1), "Mexico") {
		t.Error("initial prompt must not mention the country")
	}
	if !strings.Contains(m.userContent(t, 2), "colloquially spoken in Mexico") {
		t.Error("reflection prompt should ask for the regional variant")
	}
	if strings.Contains(m.userContent(t, 3), "Mexico") {
		t.Error("improvement prompt must not mention the country")
	}
}

func TestTranslate_NoCountryNoClause(t *testing.T) {
	m := &mockModel{}
	tr := newTranslator(t, m, 1000)

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "English", TargetLang: "Spanish", Text: "Good morning.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for n := 1; n <= 3; n++ {
		if strings.Contains(m.userContent(t, n), "colloquially spoken") {
			t.Errorf("call %d: unexpected locale clause without a country", n)
		}
	}
}

func TestTranslate_GlossaryInInitialStage(t *testing.T) {
	m := &mockModel{}
	tr := newTranslator(t, m, 1000)

	_, err := tr.Translate(context.Background(), Request{
		SourceLang: "English",
		TargetLang: "Spanish",
		Text:       "Restart the server.",
		Glossary:   map[string]string{"server": "servidor"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := m.systemContent(t, 1)
	if !strings.Contains(first, "TERMINOLOGY") || !strings.Contains(first, "servidor") {
		t.Error("initial system prompt should pin glossary terms")
	}
	for n := 2; n <= 3; n++ {
		if strings.Contains(m.systemContent(t, n), "TERMINOLOGY") {
			t.Errorf("call %d: glossary block belongs to the initial stage only", n)
		}
	}
}

// --- construction ---

func TestNew_DefaultBudget(t *testing.T) {
	tr := newTranslator(t, &mockModel{}, 0)
	if tr.budget != DefaultMaxTokensPerChunk {
		t.Errorf("expected default budget %d, got %d", DefaultMaxTokensPerChunk, tr.budget)
	}
}

func TestNew_NegativeBudget(t *testing.T) {
	_, err := New(&mockModel{}, Config{MaxTokensPerChunk: -5})
	if err == nil {
		t.Error("expected error for negative budget")
	}
}

func TestNew_UnknownEncoding(t *testing.T) {
	_, err := New(&mockModel{}, Config{Encoding: "not-an-encoding"})
	if err == nil {
		t.Error("expected error for unknown encoding")
	}
}

func TestNew_NilModelWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_KEY", "")

	_, err := New(nil, Config{})
	if err == nil {
		t.Fatal("expected error when no model and no credential")
	}
	if !errors.Is(err, llm.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestTranslate_LogfReceivesTokenCount(t *testing.T) {
	var logged []string
	m := &mockModel{}
	tr, err := New(m, Config{
		MaxTokensPerChunk: 1000,
		Logf: func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		t.Fatalf("failed to build translator: %v", err)
	}

	_, err = tr.Translate(context.Background(), Request{
		SourceLang: "en", TargetLang: "uk", Text: "Hello, world.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logged) == 0 {
		t.Fatal("expected at least one diagnostic line")
	}
	if !strings.Contains(logged[0], "tokens") {
		t.Errorf("expected token count diagnostic, got %q", logged[0])
	}
}
