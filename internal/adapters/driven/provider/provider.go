// Package provider holds plumbing shared by the remote embedding and
// completion adapters: error classification, bounded retry with
// exponential backoff, and proactive rate limiting.
package provider

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// ErrorKind classifies a provider failure for retry decisions.
type ErrorKind string

const (
	// KindTransient covers timeouts, 5xx responses and connection errors.
	KindTransient ErrorKind = "transient"

	// KindRateLimited covers 429 responses. Retryable after backoff.
	KindRateLimited ErrorKind = "rate_limited"

	// KindAuth covers 401/403 responses. Never retried.
	KindAuth ErrorKind = "auth"

	// KindInvalid covers 4xx responses caused by malformed input. Never
	// retried.
	KindInvalid ErrorKind = "invalid"
)

// Error is a classified provider failure.
type Error struct {
	// Kind drives the retry decision.
	Kind ErrorKind

	// Status is the HTTP status code, 0 for transport-level failures.
	Status int

	// Message is the provider's error text.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider error (%s, status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Message)
}

// Unwrap maps exhausted or non-retryable provider failures onto the
// domain taxonomy so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return domain.ErrProviderUnavailable
}

// Retryable reports whether the failure is worth another attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient || e.Kind == KindRateLimited
}

// ClassifyStatus builds an Error from an HTTP status code and body text.
func ClassifyStatus(status int, message string) *Error {
	kind := KindInvalid
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status >= 500:
		kind = KindTransient
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// Transient wraps a transport-level failure (timeout, refused connection)
// as a retryable provider error.
func Transient(err error) *Error {
	return &Error{Kind: KindTransient, Message: err.Error()}
}

// IsRetryable reports whether err is a retryable provider error.
func IsRetryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return false
}
