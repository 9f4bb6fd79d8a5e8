package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(handler http.HandlerFunc) (*Client, func()) {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil)) // Discard logs during tests

	server := httptest.NewServer(handler)
	client := NewClient("test-key", "test-model", logger, WithBaseURL(server.URL))

	return client, server.Close
}

func TestClient_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("successful completion", func(t *testing.T) {
		client, cleanup := setupTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req completionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "test-model", req.Model)
			assert.InDelta(t, 0.3, req.Temperature, 0.001)
			assert.Equal(t, 350, req.MaxTokens)
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "user", req.Messages[1].Role)

			w.Write([]byte(`{"choices":[{"message":{"content":"A concise summary."}}]}`))
		})
		defer cleanup()

		text, err := client.Complete(ctx, "system prompt", "user prompt")
		require.NoError(t, err)
		assert.Equal(t, "A concise summary.", text)
	})

	t.Run("empty choices yields empty string", func(t *testing.T) {
		client, cleanup := setupTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})
		defer cleanup()

		text, err := client.Complete(ctx, "s", "u")
		require.NoError(t, err)
		assert.Equal(t, "", text)
	})

	t.Run("structured error message is extracted", func(t *testing.T) {
		client, cleanup := setupTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
		})
		defer cleanup()

		_, err := client.Complete(ctx, "s", "u")
		require.Error(t, err)

		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Incorrect API key provided", apiErr.Message)
	})

	t.Run("flat error message is extracted", func(t *testing.T) {
		client, cleanup := setupTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"slow down"}`))
		})
		defer cleanup()

		_, err := client.Complete(ctx, "s", "u")
		require.Error(t, err)

		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, "slow down", apiErr.Message)
	})

	t.Run("unparseable error body falls back to raw text", func(t *testing.T) {
		client, cleanup := setupTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream exploded"))
		})
		defer cleanup()

		_, err := client.Complete(ctx, "s", "u")
		require.Error(t, err)

		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, "upstream exploded", apiErr.Message)
	})

	t.Run("transport failure is not an APIError", func(t *testing.T) {
		client, cleanup := setupTestClient(func(w http.ResponseWriter, r *http.Request) {})
		cleanup() // Close the server before the request.

		_, err := client.Complete(ctx, "s", "u")
		require.Error(t, err)

		_, ok := err.(*APIError)
		assert.False(t, ok)
	})
}
