package llm

import (
	"errors"
	"os"
	"sync"
)

// ErrMissingAPIKey reports that no API key was found for a provider that
// requires one.
var ErrMissingAPIKey = errors.New("API key is not set")

// DefaultModel is the model used by the process-wide default handle.
const DefaultModel = "gpt-4o-mini"

var (
	defaultOnce   sync.Once
	defaultHandle Model
	defaultErr    error
)

// Default returns the process-wide OpenAI handle, built once from the
// OPENAI_API_KEY environment variable (OPENAI_KEY as fallback) and never
// mutated afterwards. Both the handle and the construction error are cached,
// so a missing key reported here stays missing for the process lifetime.
func Default() (Model, error) {
	defaultOnce.Do(func() {
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			key = os.Getenv("OPENAI_KEY")
		}
		if key == "" {
			defaultErr = ErrMissingAPIKey
			return
		}
		defaultHandle = NewOpenAI(key, "", DefaultModel)
	})
	return defaultHandle, defaultErr
}
