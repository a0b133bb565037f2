package provider

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter combines a proactive token bucket with reactive handling
// of provider rate-limit headers. When the provider reports remaining
// quota exhausted, subsequent calls wait until the reported reset time.
type RateLimiter struct {
	limiter *rate.Limiter

	mu        sync.Mutex
	remaining int
	resetAt   time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained
// throughput with the given burst.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		remaining: -1,
	}
}

// Wait blocks until a request may proceed or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	if r.remaining == 0 && time.Now().Before(r.resetAt) {
		wait := time.Until(r.resetAt)
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	} else {
		r.mu.Unlock()
	}

	return r.limiter.Wait(ctx)
}

// UpdateFromResponse records rate-limit state from response headers.
// Both the X-RateLimit-* family and Retry-After are understood; absent
// headers leave the current state untouched.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.resetAt = time.Unix(unix, 0)
		}
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			r.remaining = 0
			r.resetAt = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
}
