package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T) Config {
	t.Helper()
	var cfg Config
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t)

	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Empty(t, cfg.Database.URL)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "qwen2.5:3b", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.OllamaURL)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)

	assert.True(t, cfg.Browser.Headless)
	assert.False(t, cfg.Browser.Simulate)

	assert.Equal(t, 3, cfg.Pipeline.MaxConcurrent)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.PollInterval)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/jobs")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("BROWSER_SIMULATE", "true")
	t.Setenv("PIPELINE_MAX_CONCURRENT", "5")

	cfg := parse(t)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "postgres://localhost:5432/jobs", cfg.Database.URL)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.True(t, cfg.Browser.Simulate)
	assert.Equal(t, 5, cfg.Pipeline.MaxConcurrent)
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := Config{}
	cfg.HTTP.Port = -1
	cfg.Pipeline.MaxConcurrent = 0
	cfg.Pipeline.PollInterval = -time.Second
	cfg.LLM.MaxTokens = 0
	cfg.LLM.Temperature = 5.0

	cfg.Sanitize()

	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Pipeline.MaxConcurrent)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.PollInterval)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
}
