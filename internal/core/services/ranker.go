package services

import (
	"sort"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

// Ranker orders vector hits into a deterministic result list.
type Ranker struct {
	threshold float64
}

// NewRanker creates a ranker with the given default similarity threshold.
// A non-positive threshold falls back to domain.DefaultThreshold.
func NewRanker(threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = domain.DefaultThreshold
	}
	return &Ranker{threshold: threshold}
}

// Threshold returns the configured similarity cutoff.
func (r *Ranker) Threshold() float64 {
	return r.threshold
}

// Rank filters hits below the threshold, clamps negative similarities to
// zero and returns at most limit results ordered by descending score.
// Equal scores are broken by ascending document ID so identical inputs
// always produce identical output.
func (r *Ranker) Rank(hits []driven.VectorHit, limit int, threshold float64) []domain.RankedResult {
	if threshold <= 0 {
		threshold = r.threshold
	}

	results := make([]domain.RankedResult, 0, len(hits))
	for _, hit := range hits {
		score := hit.Similarity
		if score < 0 {
			score = 0
		}
		if score < threshold {
			continue
		}
		results = append(results, domain.RankedResult{
			DocumentID: hit.DocumentID,
			Score:      score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID < results[j].DocumentID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results
}

// MaxSimilarity returns the highest similarity among hits, 0 when empty.
func MaxSimilarity(hits []driven.VectorHit) float64 {
	max := 0.0
	for _, hit := range hits {
		if hit.Similarity > max {
			max = hit.Similarity
		}
	}
	return max
}
