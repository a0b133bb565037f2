package memory

import (
	"sync"

	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

// Ensure EmbeddingCache implements the interface.
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

// EmbeddingCache is an in-memory implementation of driven.EmbeddingCache.
// Vectors are stored and returned by reference; callers must not mutate
// them.
type EmbeddingCache struct {
	mu      sync.RWMutex
	entries map[string][]float32
}

// NewEmbeddingCache creates a new in-memory embedding cache.
func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{
		entries: make(map[string][]float32),
	}
}

// Get returns the cached vector for a content hash, if present.
func (c *EmbeddingCache) Get(hash string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.entries[hash]
	return vec, ok
}

// Put stores a vector for a content hash.
func (c *EmbeddingCache) Put(hash string, embedding []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = embedding
}

// Evict removes the entry for a content hash, if present.
func (c *EmbeddingCache) Evict(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, hash)
}

// Len returns the number of cached entries.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
