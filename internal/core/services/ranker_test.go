package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

func TestRankFiltersBelowThreshold(t *testing.T) {
	ranker := NewRanker(0.30)
	hits := []driven.VectorHit{
		{DocumentID: "a", Similarity: 0.95},
		{DocumentID: "b", Similarity: 0.30},
		{DocumentID: "c", Similarity: 0.29},
		{DocumentID: "d", Similarity: 0.01},
	}

	ranked := ranker.Rank(hits, 10, 0)
	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].DocumentID)
	assert.Equal(t, "b", ranked[1].DocumentID)
}

func TestRankOrdersByScoreThenID(t *testing.T) {
	ranker := NewRanker(0.30)
	hits := []driven.VectorHit{
		{DocumentID: "z", Similarity: 0.80},
		{DocumentID: "a", Similarity: 0.80},
		{DocumentID: "m", Similarity: 0.90},
	}

	ranked := ranker.Rank(hits, 10, 0)
	assert.Equal(t, []string{"m", "a", "z"}, []string{
		ranked[0].DocumentID, ranked[1].DocumentID, ranked[2].DocumentID,
	})
}

func TestRankDeterministicAcrossRepeats(t *testing.T) {
	ranker := NewRanker(0.30)
	hits := []driven.VectorHit{
		{DocumentID: "c", Similarity: 0.5},
		{DocumentID: "a", Similarity: 0.5},
		{DocumentID: "b", Similarity: 0.5},
	}

	first := ranker.Rank(hits, 10, 0)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ranker.Rank(hits, 10, 0))
	}
}

func TestRankClampsNegativeScores(t *testing.T) {
	ranker := NewRanker(0.30)
	hits := []driven.VectorHit{{DocumentID: "a", Similarity: -0.4}}

	ranked := ranker.Rank(hits, 10, 0)
	assert.Empty(t, ranked)

	// With a zero-effective threshold override they survive, at score 0.
	permissive := NewRanker(0.0001)
	ranked = permissive.Rank(hits, 10, 0.0001)
	assert.Empty(t, ranked)
}

func TestRankRespectsLimit(t *testing.T) {
	ranker := NewRanker(0.1)
	hits := make([]driven.VectorHit, 10)
	for i := range hits {
		hits[i] = driven.VectorHit{DocumentID: string(rune('a' + i)), Similarity: 0.9 - float64(i)*0.01}
	}

	ranked := ranker.Rank(hits, 3, 0)
	assert.Len(t, ranked, 3)
	assert.Equal(t, "a", ranked[0].DocumentID)
}

func TestRankThresholdOverride(t *testing.T) {
	ranker := NewRanker(0.30)
	hits := []driven.VectorHit{
		{DocumentID: "a", Similarity: 0.5},
		{DocumentID: "b", Similarity: 0.4},
	}

	ranked := ranker.Rank(hits, 10, 0.45)
	assert.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].DocumentID)
}

func TestNewRankerDefaultsThreshold(t *testing.T) {
	ranker := NewRanker(0)
	assert.Equal(t, domain.DefaultThreshold, ranker.Threshold())
}

func TestMaxSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, MaxSimilarity(nil))
	hits := []driven.VectorHit{
		{DocumentID: "a", Similarity: 0.2},
		{DocumentID: "b", Similarity: 0.7},
	}
	assert.Equal(t, 0.7, MaxSimilarity(hits))
}
