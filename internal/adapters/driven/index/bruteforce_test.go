package index

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

func TestBruteForceIndex_AddAndSearch(t *testing.T) {
	idx := NewBruteForceIndex(3)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{0, 1, 0}))
	require.NoError(t, idx.Add(ctx, "c", []float32{0.9, 0.1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "a", hits[0].DocumentID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "c", hits[1].DocumentID)
}

func TestBruteForceIndex_DimensionMismatch(t *testing.T) {
	idx := NewBruteForceIndex(3)

	err := idx.Add(context.Background(), "a", []float32{1, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDimensionMismatch))
	assert.Equal(t, 0, idx.Len())
}

func TestBruteForceIndex_Deterministic(t *testing.T) {
	idx := NewBruteForceIndex(2)
	ctx := context.Background()

	// Same vector inserted under different IDs; insertion order must
	// decide the tie every time.
	require.NoError(t, idx.Add(ctx, "zeta", []float32{1, 1}))
	require.NoError(t, idx.Add(ctx, "alpha", []float32{1, 1}))
	require.NoError(t, idx.Add(ctx, "mid", []float32{1, 1}))

	first, err := idx.Search(ctx, []float32{1, 1}, 3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := idx.Search(ctx, []float32{1, 1}, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	assert.Equal(t, "zeta", first[0].DocumentID)
	assert.Equal(t, "alpha", first[1].DocumentID)
	assert.Equal(t, "mid", first[2].DocumentID)
}

func TestBruteForceIndex_ReplaceKeepsPosition(t *testing.T) {
	idx := NewBruteForceIndex(2)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0})) // replace

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// "a" keeps its original insertion position despite the replace.
	assert.Equal(t, "a", hits[0].DocumentID)
	assert.Equal(t, 2, idx.Len())
}

func TestBruteForceIndex_Delete(t *testing.T) {
	idx := NewBruteForceIndex(2)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Delete(ctx, "a"))
	require.NoError(t, idx.Delete(ctx, "missing")) // no-op

	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestBruteForceIndex_EmptyAndZeroK(t *testing.T) {
	idx := NewBruteForceIndex(2)
	ctx := context.Background()

	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	hits, err = idx.Search(ctx, []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestBruteForceIndex_CopiesVectors(t *testing.T) {
	idx := NewBruteForceIndex(2)
	ctx := context.Background()

	vec := []float32{1, 0}
	require.NoError(t, idx.Add(ctx, "a", vec))

	// Mutating the caller's slice must not corrupt the index.
	vec[0] = -1

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestBruteForceIndex_ConcurrentDeleteAndSearch(t *testing.T) {
	idx := NewBruteForceIndex(2)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, idx.Add(ctx, fmt.Sprintf("doc-%d", i), []float32{1, float32(i) / 50}))
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i += 2 {
			_ = idx.Delete(ctx, fmt.Sprintf("doc-%d", i))
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			hits, err := idx.Search(ctx, []float32{1, 0}, 10)
			assert.NoError(t, err)
			// Every hit must be a fully valid score; a partially
			// visible vector would produce a garbage similarity.
			for _, h := range hits {
				assert.GreaterOrEqual(t, h.Similarity, -1.0)
				assert.LessOrEqual(t, h.Similarity, 1.0)
			}
		}
	}()

	wg.Wait()
}
