// Package config loads application configuration from environment
// variables, with a .env file honored in development.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	HTTP     HTTPConfig     `envPrefix:"HTTP_"`
	Database DatabaseConfig `envPrefix:"DATABASE_"`
	LLM      LLMConfig
	Browser  BrowserConfig  `envPrefix:"BROWSER_"`
	Pipeline PipelineConfig `envPrefix:"PIPELINE_"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig configures the Postgres job store. An empty URL runs
// the pipeline without persistence.
type DatabaseConfig struct {
	URL string `env:"URL"`
}

// LLMConfig configures cover-letter generation.
type LLMConfig struct {
	// Provider selects the generation backend: ollama, gemini, or none
	// for template-only generation.
	Provider string `env:"LLM_PROVIDER" envDefault:"ollama"`

	Model        string `env:"LLM_MODEL" envDefault:"qwen2.5:3b"`
	OllamaURL    string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	MaxTokens   int           `env:"LLM_MAX_TOKENS" envDefault:"512"`
	Temperature float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	Timeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

// BrowserConfig configures submission sessions.
type BrowserConfig struct {
	Headless bool `env:"HEADLESS" envDefault:"true"`

	// Simulate forces the simulated session provider even when Chrome
	// is available.
	Simulate bool `env:"SIMULATE" envDefault:"false"`
}

// PipelineConfig configures the coordinator loop and executor.
type PipelineConfig struct {
	MaxConcurrent int           `env:"MAX_CONCURRENT" envDefault:"3"`
	PollInterval  time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
}

// Load reads configuration from the environment, applying a .env file
// first when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *Config) Sanitize() {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.Pipeline.MaxConcurrent < 1 {
		c.Pipeline.MaxConcurrent = 3
	}
	if c.Pipeline.PollInterval <= 0 {
		c.Pipeline.PollInterval = 5 * time.Second
	}
	if c.LLM.MaxTokens < 1 {
		c.LLM.MaxTokens = 512
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 60 * time.Second
	}
}
