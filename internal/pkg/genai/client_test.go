package genai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("ParsesGeneratedText", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Contains(t, r.URL.Path, ":generateContent")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Trie tes déchets par matière."}]}}]}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
		text, err := client.GenerateContent(ctx, "Comment trier mes déchets ?")
		require.NoError(t, err)
		assert.Equal(t, "Trie tes déchets par matière.", text)
	})

	t.Run("FallsBackWithoutAPIKey", func(t *testing.T) {
		client := NewClient(Config{})
		text, err := client.GenerateContent(ctx, "question")
		require.NoError(t, err)
		assert.Equal(t, FallbackMessage, text)
	})

	t.Run("FallsBackOnUpstreamError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
		text, err := client.GenerateContent(ctx, "question")
		require.NoError(t, err)
		assert.Equal(t, FallbackMessage, text)
	})

	t.Run("FallsBackOnEmptyCandidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
		text, err := client.GenerateContent(ctx, "question")
		require.NoError(t, err)
		assert.Equal(t, FallbackMessage, text)
	})

	t.Run("FallsBackOnTransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
		text, err := client.GenerateContent(ctx, "question")
		require.NoError(t, err)
		assert.Equal(t, FallbackMessage, text)
	})
}
