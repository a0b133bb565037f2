package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// Nothing can be ingested or recommended without one.
//
// Note: This is separate from VectorIndex which stores and searches vectors.
// EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	// The text must be non-empty after trimming; implementations reject
	// empty input with domain.ErrInvalidInput before any network call.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	// This is fixed per model and must match the VectorIndex configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EmbeddingCache maps content hashes to previously generated vectors so
// that re-embedding identical text skips the provider call entirely and
// returns the identical vector bit-for-bit.
//
// Entry lifetime matches document lifetime: the ingest service evicts the
// entry when the owning document is deleted.
type EmbeddingCache interface {
	// Get returns the cached vector for a content hash, if present.
	Get(hash string) ([]float32, bool)

	// Put stores a vector for a content hash.
	Put(hash string, embedding []float32)

	// Evict removes the entry for a content hash, if present.
	Evict(hash string)

	// Len returns the number of cached entries.
	Len() int
}
