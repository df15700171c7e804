package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// Ollama is a chat completion handle for a local or remote Ollama server.
type Ollama struct {
	client *ollama.Client
	model  string
}

func NewOllama(host, model string) (*Ollama, error) {
	if host == "" {
		host = "http://localhost:11434"
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}

	httpClient := &http.Client{Timeout: 120 * time.Second}

	return &Ollama{
		client: ollama.NewClient(u, httpClient),
		model:  model,
	}, nil
}

func (o *Ollama) Complete(ctx context.Context, messages []Message) (string, error) {
	req := &ollama.ChatRequest{
		Model:    o.model,
		Messages: make([]ollama.Message, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, ollama.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	// Responses stream by default; accumulate the fragments.
	var text strings.Builder
	err := o.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		text.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	return text.String(), nil
}
