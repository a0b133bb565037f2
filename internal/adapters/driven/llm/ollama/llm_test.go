package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/provider"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

func newTestService(url string) *CompletionService {
	svc := NewCompletionService(Config{BaseURL: url})
	svc.retry = provider.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	return svc
}

func TestRateLimiterEnabled(t *testing.T) {
	assert.Nil(t, NewCompletionService(Config{}).limiter)
	assert.NotNil(t, NewCompletionService(Config{RequestsPerSecond: 2}).limiter)
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		var resp chatResponse
		resp.Message.Content = " an explanation "
		resp.Done = true
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	out, err := svc.Complete(context.Background(), "sys", "user prompt", driven.CompleteOptions{MaxTokens: 100})
	require.NoError(t, err)
	assert.Equal(t, "an explanation", out)
}

func TestCompleteMapsOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Options)
		assert.Equal(t, 250, req.Options.NumPredict)
		assert.InDelta(t, 0.7, req.Options.Temperature, 1e-9)

		var resp chatResponse
		resp.Message.Content = "ok"
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	_, err := svc.Complete(context.Background(), "", "p", driven.CompleteOptions{MaxTokens: 250, Temperature: 0.7})
	require.NoError(t, err)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	assert.NoError(t, svc.Ping(context.Background()))
}
