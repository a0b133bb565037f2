package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed caller input: an empty query or
	// ingest text, or an out-of-range result limit. Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable indicates the embedding or completion provider
	// was unreachable or exhausted its retry budget. At embedding time this
	// is fatal to the request; at synthesis time the response degrades.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrDimensionMismatch indicates a vector did not match the configured
	// embedding dimension. Fatal on ingest, never silently coerced.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Nothing can be ingested or recommended without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionUnavailable indicates the completion service is not
	// configured. Recommendations still work; explanations are omitted.
	ErrCompletionUnavailable = errors.New("completion service unavailable")
)
