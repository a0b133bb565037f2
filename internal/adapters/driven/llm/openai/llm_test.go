package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/provider"
	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, url string) *CompletionService {
	t.Helper()
	svc, err := NewCompletionService(Config{APIKey: "test-key", BaseURL: url})
	require.NoError(t, err)
	svc.retry = provider.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	return svc
}

func completionResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}, "finish_reason": "stop"},
		},
	}
}

func TestNewCompletionServiceRequiresAPIKey(t *testing.T) {
	_, err := NewCompletionService(Config{})
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
}

func TestNewCompletionServiceRateLimiter(t *testing.T) {
	svc, err := NewCompletionService(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Nil(t, svc.limiter)

	svc, err = NewCompletionService(Config{APIKey: "key", RequestsPerSecond: 2})
	require.NoError(t, err)
	assert.NotNil(t, svc.limiter)
}

func TestCompleteWithRateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("throttled but fine"))
	}))
	defer server.Close()

	svc, err := NewCompletionService(Config{
		APIKey:            "test-key",
		BaseURL:           server.URL,
		RequestsPerSecond: 100,
	})
	require.NoError(t, err)

	out, err := svc.Complete(context.Background(), "", "explain", driven.CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "throttled but fine", out)
}

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "you are an HR consultant", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, 400, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)

		json.NewEncoder(w).Encode(completionResponse("  a good match  "))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	out, err := svc.Complete(context.Background(), "you are an HR consultant", "explain", driven.CompleteOptions{
		MaxTokens:   400,
		Temperature: 0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "a good match", out)
}

func TestCompleteOmitsEmptySystemMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		json.NewEncoder(w).Encode(completionResponse("ok"))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	_, err := svc.Complete(context.Background(), "", "just a prompt", driven.CompleteOptions{})
	require.NoError(t, err)
}

func TestCompleteRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(completionResponse("recovered"))
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	out, err := svc.Complete(context.Background(), "", "p", driven.CompleteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCompleteMapsFailureToProviderUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	_, err := svc.Complete(context.Background(), "", "p", driven.CompleteOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	svc := newTestService(t, server.URL)
	_, err := svc.Complete(context.Background(), "", "p", driven.CompleteOptions{})
	assert.Error(t, err)
}
