// Package llm wraps the text-generation backends used by the debate.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// Provider names accepted by NewModel.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config selects and configures a generation backend.
type Config struct {
	Provider string        // "gemini" or "openai"
	APIKey   string        // If empty, falls back to the provider's env var
	Model    string        // e.g., "gemini-2.5-flash"
	BaseURL  string        // OpenAI-compatible endpoint override
	Timeout  time.Duration // Per-request HTTP timeout (openai only)
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4.1-mini"
	default:
		return "gemini-2.5-flash"
	}
}

// CredentialEnv returns the provider-native env var holding the API key.
func CredentialEnv(provider string) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GOOGLE_API_KEY"
}

// NewModel creates the configured backend behind the adk model.LLM interface.
func NewModel(ctx context.Context, cfg Config) (model.LLM, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(CredentialEnv(provider))
	}
	if apiKey == "" {
		return nil, &InvocationError{Op: "configure", Model: cfg.Model, Err: fmt.Errorf("%w: %s not set", ErrMissingCredential, CredentialEnv(provider))}
	}

	name := cfg.Model
	if name == "" {
		name = DefaultModel(provider)
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiModel(ctx, apiKey, name)
	case ProviderOpenAI:
		return NewOpenAIModel(OpenAIConfig{
			APIKey:  apiKey,
			Model:   name,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, &InvocationError{Op: "configure", Model: name, Err: fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)}
	}
}

// NewGeminiModel creates a Gemini model through the adk gemini adapter.
func NewGeminiModel(ctx context.Context, apiKey, name string) (model.LLM, error) {
	m, err := gemini.NewModel(ctx, name, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &InvocationError{Op: "configure", Model: name, Err: fmt.Errorf("failed to create gemini model: %w", err)}
	}
	return m, nil
}
