package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCachePutGet(t *testing.T) {
	cache := NewEmbeddingCache()

	_, ok := cache.Get("h1")
	assert.False(t, ok)

	cache.Put("h1", []float32{0.1, 0.2})
	vec, ok := cache.Get("h1")
	require.True(t, ok)
	assert.Equal(t, []float32{0.1, 0.2}, vec)
	assert.Equal(t, 1, cache.Len())
}

func TestEmbeddingCacheEvict(t *testing.T) {
	cache := NewEmbeddingCache()
	cache.Put("h1", []float32{1})
	cache.Evict("h1")

	_, ok := cache.Get("h1")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	// Evicting an absent key is a no-op.
	cache.Evict("h2")
}

func TestEmbeddingCacheConcurrentAccess(t *testing.T) {
	cache := NewEmbeddingCache()
	done := make(chan struct{})

	go func() {
		for i := 0; i < 1000; i++ {
			cache.Put("shared", []float32{float32(i)})
		}
		close(done)
	}()

	for i := 0; i < 1000; i++ {
		cache.Get("shared")
	}
	<-done
}
