// Package llm provides chat-completion handles for the model backends used
// by the translation pipeline (OpenAI and OpenAI-compatible endpoints,
// Anthropic, Gemini, Ollama).
//
// Every backend is exposed through the same two-role Model interface: the
// pipeline builds a system instruction plus a user payload, the handle
// returns the completion text. Backends carry no per-call state, so a single
// handle is safe for concurrent use.
package llm

import "context"

// Message is one turn of a chat completion request.
type Message struct {
	Role    string
	Content string
}

// Roles accepted in a Message. The pipeline only ever sends one system
// instruction followed by one user payload.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Model is a handle to a chat completion backend. Complete sends the
// messages as a single turn and returns the completion text.
type Model interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(context.Context, []Message) (string, error)

func (f ModelFunc) Complete(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}
