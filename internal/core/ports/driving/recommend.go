package driving

import (
	"context"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// RecommendService produces ranked candidate recommendations for a query.
type RecommendService interface {
	// Recommend embeds the query, ranks stored documents by similarity and
	// synthesises a natural-language explanation of the match.
	//
	// Ranking is the load-bearing output: a synthesis failure degrades the
	// response (Explanation nil, Status degraded) but never discards the
	// ranked results. An embedding failure is fatal to the request.
	Recommend(ctx context.Context, query string, opts domain.RecommendOptions) (*domain.Recommendation, error)
}
