package llm

// Provider identifies a text-generation backend.
type Provider string

// Supported providers.
const (
	// ProviderOllama generates against a local Ollama server.
	ProviderOllama Provider = "ollama"
	// ProviderGemini generates against Google Gemini.
	ProviderGemini Provider = "gemini"
)

// Config selects a provider and model.
type Config struct {
	Provider Provider
	Model    string
	BaseURL  string // Ollama only
	APIKey   string // Gemini only
}

// DefaultConfig returns the stock local-model configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOllama,
		Model:    "qwen2.5:3b",
		BaseURL:  "http://localhost:11434",
	}
}
