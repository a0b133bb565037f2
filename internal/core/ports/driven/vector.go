package driven

import "context"

// VectorIndex provides similarity search over document embeddings.
// Implementations may be exact (brute force) or approximate (inverted-file
// clustering); both must order results by decreasing similarity with
// insertion-order tie-breaking so identical inputs produce identical output.
type VectorIndex interface {
	// Add inserts or replaces the vector for a document ID.
	// The vector becomes visible to Search atomically: a concurrent reader
	// sees either the whole vector or nothing.
	Add(ctx context.Context, documentID string, embedding []float32) error

	// Delete removes a vector from the index. Queries already in flight
	// either see the document fully or not at all, never a partial vector.
	Delete(ctx context.Context, documentID string) error

	// Search finds the k most similar vectors to the query.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// DocumentID is the matched document.
	DocumentID string

	// Similarity is the cosine similarity score.
	Similarity float64
}
