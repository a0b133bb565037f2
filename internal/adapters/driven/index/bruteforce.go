package index

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

// Ensure BruteForceIndex implements the interface.
var _ driven.VectorIndex = (*BruteForceIndex)(nil)

// entry pairs a stored vector with its insertion sequence number.
// The sequence number is the tie-breaker that keeps result ordering
// deterministic for identical inputs.
type entry struct {
	id     string
	vector []float32
	seq    uint64
}

// BruteForceIndex is an exact linear-scan vector index.
// It is the reference implementation for correctness and the default for
// small corpora where a full scan is cheaper than maintaining clusters.
type BruteForceIndex struct {
	mu         sync.RWMutex
	entries    map[string]*entry
	nextSeq    uint64
	dimensions int
}

// NewBruteForceIndex creates a brute-force index. A dimensions value of 0
// disables dimension checking (the first insert fixes nothing; the ingest
// service remains the authority on dimension enforcement).
func NewBruteForceIndex(dimensions int) *BruteForceIndex {
	return &BruteForceIndex{
		entries:    make(map[string]*entry),
		dimensions: dimensions,
	}
}

// Add inserts or replaces the vector for a document ID.
// The vector is copied; callers keep no live reference into the index.
func (idx *BruteForceIndex) Add(_ context.Context, documentID string, embedding []float32) error {
	if idx.dimensions > 0 && len(embedding) != idx.dimensions {
		return fmt.Errorf("index: got %d dimensions, want %d: %w",
			len(embedding), idx.dimensions, domain.ErrDimensionMismatch)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if existing, ok := idx.entries[documentID]; ok {
		// Replacement keeps the original insertion position.
		existing.vector = vec
		return nil
	}

	idx.entries[documentID] = &entry{id: documentID, vector: vec, seq: idx.nextSeq}
	idx.nextSeq++
	return nil
}

// Delete removes a vector from the index. Unknown IDs are a no-op so that
// delete/query races resolve to "not found" rather than an error.
func (idx *BruteForceIndex) Delete(_ context.Context, documentID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.entries, documentID)
	return nil
}

// Search finds the k most similar vectors using an exact scan.
// Results are ordered by decreasing similarity, ties by insertion order.
func (idx *BruteForceIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return []driven.VectorHit{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		id  string
		sim float64
		seq uint64
	}

	results := make([]scored, 0, len(idx.entries))
	for _, e := range idx.entries {
		results = append(results, scored{id: e.id, sim: CosineSimilarity(query, e.vector), seq: e.seq})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].sim != results[j].sim {
			return results[i].sim > results[j].sim
		}
		return results[i].seq < results[j].seq
	})

	if len(results) > k {
		results = results[:k]
	}

	hits := make([]driven.VectorHit, len(results))
	for i, r := range results {
		hits[i] = driven.VectorHit{DocumentID: r.id, Similarity: r.sim}
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (idx *BruteForceIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Close is a no-op for the in-memory index.
func (idx *BruteForceIndex) Close() error {
	return nil
}
