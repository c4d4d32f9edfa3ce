// Package llm provides the text-generation client abstraction used by the
// cover-letter generator. The primary provider is a local Ollama instance;
// Gemini is available as a hosted alternative.
package llm

import (
	"context"
	"fmt"
)

// GenerateOptions bounds a single generation call.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float32
}

// DefaultGenerateOptions returns the stock settings for cover letters.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{MaxTokens: 512, Temperature: 0.7}
}

// Client is an abstraction over text-generation providers. Implementations
// are fallible and time-bounded; callers own the fallback behavior.
type Client interface {
	// GenerateText produces completion text for a prompt.
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Healthy reports whether the backend is reachable and serving the
	// configured model.
	Healthy(ctx context.Context) bool
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a client for the configured provider.
func NewClient(ctx context.Context, cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg.BaseURL, cfg.Model), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.Model, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
