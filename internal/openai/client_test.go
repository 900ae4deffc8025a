// internal/openai/client_test.go
package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewClient("test-key", server.URL, "test-model", logger)
}

func TestClient_Inquire(t *testing.T) {
	t.Run("sends the chat-completions request shape", func(t *testing.T) {
		var captured inquiryRequest
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &captured))

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"choices": []}`))
		})
		client := newTestClient(t, handler)

		reply, err := client.Inquire(context.Background(), "how do I contribute?")

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, reply.Status)
		assert.Equal(t, `{"choices": []}`, reply.Text)
		assert.Equal(t, "test-model", captured.Model)
		require.Len(t, captured.Messages, 1)
		assert.Equal(t, "user", captured.Messages[0].Role)
		assert.Equal(t, "how do I contribute?", captured.Messages[0].Content)
	})

	t.Run("surfaces non-2xx status and body unmodified", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": "rate limited"}`))
		})
		client := newTestClient(t, handler)

		reply, err := client.Inquire(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, reply.Status)
		assert.Equal(t, `{"error": "rate limited"}`, reply.Text)
	})
}
