package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerateText(t *testing.T) {
	var captured ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "  Dear Hiring Manager,\nletter body  "})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "qwen2.5:3b")
	text, err := client.GenerateText(context.Background(), "write a letter", DefaultGenerateOptions())
	require.NoError(t, err)

	assert.Equal(t, "Dear Hiring Manager,\nletter body", text)
	assert.Equal(t, "qwen2.5:3b", captured.Model)
	assert.False(t, captured.Stream)
	assert.Equal(t, 512, captured.Options.NumPredict)
	assert.InDelta(t, 0.7, captured.Options.Temperature, 0.001)
}

func TestOllamaGenerateTextErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewOllamaClient(srv.URL, "qwen2.5:3b")
		_, err := client.GenerateText(context.Background(), "prompt", DefaultGenerateOptions())
		assert.ErrorContains(t, err, "status 500")
	})

	t.Run("empty response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"response": "   "})
		}))
		defer srv.Close()

		client := NewOllamaClient(srv.URL, "qwen2.5:3b")
		_, err := client.GenerateText(context.Background(), "prompt", DefaultGenerateOptions())
		assert.ErrorContains(t, err, "empty response")
	})

	t.Run("context timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		client := NewOllamaClient(srv.URL, "qwen2.5:3b")
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := client.GenerateText(ctx, "prompt", DefaultGenerateOptions())
		assert.Error(t, err)
	})
}

func TestOllamaHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]string{{"name": "qwen2.5:3b-instruct"}},
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, "qwen2.5:3b")
	assert.True(t, client.Healthy(context.Background()))

	other := NewOllamaClient(srv.URL, "llama3")
	assert.False(t, other.Healthy(context.Background()))
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "mystery"})
	assert.Error(t, err)
}
