// Package translator implements the three-stage translation pipeline: an
// initial draft, a reflection pass that critiques it, and an improvement
// pass that applies the critique.
//
// Texts under the per-chunk token budget run the pipeline once over the
// whole input. Larger texts are split on token boundaries into near-equal
// chunks; each chunk runs the same three stages with the rest of the
// document supplied as context, strictly in order, and the per-chunk
// results are concatenated. A failed model call aborts the whole
// translation with no partial result.
package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/perelab/tolmach/internal/llm"
	"github.com/perelab/tolmach/internal/postprocess"
	"github.com/perelab/tolmach/internal/tokenizer"
)

// DefaultMaxTokensPerChunk is the per-chunk token budget used when none is
// configured.
const DefaultMaxTokensPerChunk = 1000

// Request describes one translation.
type Request struct {
	SourceLang string
	TargetLang string
	Text       string
	// Country, when set, asks the reflection stage for the variant of the
	// target language spoken there.
	Country string
	// Glossary pins exact term translations in the initial stage.
	Glossary map[string]string
}

// Config carries the tunables of a Translator.
type Config struct {
	// MaxTokensPerChunk is the token budget per model call. Inputs that
	// reach it are split. Zero selects DefaultMaxTokensPerChunk.
	MaxTokensPerChunk int
	// Encoding names the BPE table used for counting and splitting. Empty
	// selects tokenizer.DefaultEncoding.
	Encoding string
	// Logf receives progress diagnostics. Nil disables them.
	Logf func(format string, args ...any)
}

// Translator runs the pipeline against one model handle. Safe for
// concurrent use; it holds no per-call state.
type Translator struct {
	model  llm.Model
	codec  *tokenizer.Codec
	budget int
	logf   func(string, ...any)
}

// New builds a Translator. A nil model selects the process-wide default
// handle, which requires the OPENAI_API_KEY environment variable.
func New(model llm.Model, cfg Config) (*Translator, error) {
	if model == nil {
		m, err := llm.Default()
		if err != nil {
			return nil, fmt.Errorf("no model configured: %w", err)
		}
		model = m
	}

	budget := cfg.MaxTokensPerChunk
	if budget == 0 {
		budget = DefaultMaxTokensPerChunk
	}
	if budget < 0 {
		return nil, fmt.Errorf("max tokens per chunk must be positive, got %d", budget)
	}

	codec, err := tokenizer.New(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Translator{
		model:  model,
		codec:  codec,
		budget: budget,
		logf:   logf,
	}, nil
}

// Translate runs the pipeline over req.Text and returns the finished
// translation. Inputs under the token budget take the single-pass path;
// larger inputs are split and reassembled by plain concatenation, which the
// token splitter makes lossless.
func (t *Translator) Translate(ctx context.Context, req Request) (string, error) {
	count := t.codec.Count(req.Text)
	t.logf("input is %d tokens (budget %d per chunk)", count, t.budget)

	if count < t.budget {
		return t.translateSingle(ctx, req)
	}

	size := PlanChunkSize(count, t.budget)
	chunks, err := t.codec.Split(req.Text, size, 0)
	if err != nil {
		return "", err
	}
	t.logf("split into %d chunks of up to %d tokens", len(chunks), size)

	translated, err := t.translateChunks(ctx, req, chunks)
	if err != nil {
		return "", err
	}
	return strings.Join(translated, ""), nil
}

// complete sends one system+user exchange to the model and cleans the
// response. Model failures come back as *ServiceError.
func (t *Translator) complete(ctx context.Context, system, user string) (string, error) {
	out, err := t.model.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	})
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	return postprocess.Clean(out), nil
}
