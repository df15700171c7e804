package llm

import (
	"context"
	"fmt"
	"os"
)

// Provider names accepted by New.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOllama     = "ollama"
)

// Config selects and parameterizes a model backend.
type Config struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// defaultModels maps each provider to the model used when none is configured.
var defaultModels = map[string]string{
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp:free",
	ProviderGroq:       "llama-3.3-70b-versatile",
	ProviderAnthropic:  "claude-3-5-haiku-latest",
	ProviderGemini:     "gemini-2.0-flash",
	ProviderOllama:     "llama3.2",
}

// apiKeyEnvVars maps each provider to the environment variables consulted,
// in order, when Config.APIKey is empty.
var apiKeyEnvVars = map[string][]string{
	ProviderOpenAI:     {"OPENAI_API_KEY", "OPENAI_KEY"},
	ProviderOpenRouter: {"OPENROUTER_API_KEY"},
	ProviderGroq:       {"GROQ_API_KEY"},
	ProviderAnthropic:  {"ANTHROPIC_API_KEY"},
	ProviderGemini:     {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
}

// New builds a model handle for the configured provider. An empty provider
// selects OpenAI. The API key falls back to the provider's environment
// variables; providers that require one fail with ErrMissingAPIKey when none
// is found.
func New(ctx context.Context, cfg Config) (Model, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	model := cfg.Model
	if model == "" {
		model = defaultModels[provider]
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		for _, name := range apiKeyEnvVars[provider] {
			if v := os.Getenv(name); v != "" {
				apiKey = v
				break
			}
		}
	}

	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
		}
		return NewOpenAI(apiKey, cfg.BaseURL, model), nil
	case ProviderOpenRouter:
		if apiKey == "" {
			return nil, fmt.Errorf("openrouter: %w", ErrMissingAPIKey)
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
		return NewOpenAI(apiKey, baseURL, model), nil
	case ProviderGroq:
		if apiKey == "" {
			return nil, fmt.Errorf("groq: %w", ErrMissingAPIKey)
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.groq.com/openai/v1"
		}
		return NewOpenAI(apiKey, baseURL, model), nil
	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
		}
		return NewAnthropic(apiKey, model), nil
	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
		}
		return NewGemini(ctx, apiKey, model)
	case ProviderOllama:
		host := cfg.BaseURL
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		return NewOllama(host, model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
