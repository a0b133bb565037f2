// Package cached decorates an embedding service with a content-hash
// cache so identical text is never embedded twice.
package cached

import (
	"context"
	"sync/atomic"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// EmbeddingService wraps another embedding service and serves repeated
// inputs from a cache keyed by normalised content hash. A cache hit
// returns the stored vector without touching the underlying provider.
type EmbeddingService struct {
	inner driven.EmbeddingService
	cache driven.EmbeddingCache

	hits   atomic.Int64
	misses atomic.Int64
}

// NewEmbeddingService wraps inner with the given cache.
func NewEmbeddingService(inner driven.EmbeddingService, cache driven.EmbeddingCache) *EmbeddingService {
	return &EmbeddingService{
		inner: inner,
		cache: cache,
	}
}

// Embed returns the cached vector when the content hash is known,
// otherwise delegates to the underlying service and stores the result.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	hash := domain.ContentHash(text)
	if vec, ok := s.cache.Get(hash); ok {
		s.hits.Add(1)
		return vec, nil
	}

	vec, err := s.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	s.misses.Add(1)
	s.cache.Put(hash, vec)
	return vec, nil
}

// EmbedBatch embeds each text, serving cached entries and batching the
// remainder through the underlying service in one call.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		hash := domain.ContentHash(text)
		if vec, ok := s.cache.Get(hash); ok {
			s.hits.Add(1)
			out[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		embedded, err := s.inner.EmbedBatch(ctx, missing)
		if err != nil {
			return nil, err
		}
		for j, vec := range embedded {
			i := missingIdx[j]
			out[i] = vec
			s.misses.Add(1)
			s.cache.Put(domain.ContentHash(texts[i]), vec)
		}
	}

	return out, nil
}

// Evict drops the cache entry for the given content hash.
func (s *EmbeddingService) Evict(hash string) {
	s.cache.Evict(hash)
}

// Hits returns the number of cache hits served.
func (s *EmbeddingService) Hits() int64 {
	return s.hits.Load()
}

// Misses returns the number of provider calls made.
func (s *EmbeddingService) Misses() int64 {
	return s.misses.Load()
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the name of the underlying embedding model.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the underlying service.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close releases the underlying service.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}
