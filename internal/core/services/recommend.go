package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driving"
	"github.com/talenta-labs/matcha-cli/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.RecommendService = (*RecommendService)(nil)

// RecommendService runs the query pipeline: embed, search, rank, hydrate
// and synthesise. Ranking is the load-bearing output; a synthesis failure
// degrades the response but never discards the ranked results. An
// embedding failure is fatal to the request.
type RecommendService struct {
	store      driven.DocumentStore
	index      driven.VectorIndex
	embedder   driven.EmbeddingService
	completion driven.CompletionService
	ranker     *Ranker
}

// NewRecommendService creates a new recommend service.
// The completion parameter is optional (can be nil); without it every
// response is degraded to ranked results only.
func NewRecommendService(
	store driven.DocumentStore,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	completion driven.CompletionService,
	ranker *Ranker,
) *RecommendService {
	if ranker == nil {
		ranker = NewRanker(0)
	}
	return &RecommendService{
		store:      store,
		index:      index,
		embedder:   embedder,
		completion: completion,
		ranker:     ranker,
	}
}

// Recommend embeds the query, ranks stored documents by similarity and
// synthesises a natural-language explanation of the match.
func (s *RecommendService) Recommend(
	ctx context.Context, query string, opts domain.RecommendOptions,
) (*domain.Recommendation, error) {
	logger.Section("Recommendation")

	query = domain.NormaliseText(query)
	if query == "" {
		return nil, fmt.Errorf("recommend: empty query: %w", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit == 0 {
		limit = domain.DefaultLimit
	}
	if limit < 1 || limit > domain.MaxLimit {
		return nil, fmt.Errorf("recommend: limit %d out of range [1, %d]: %w",
			limit, domain.MaxLimit, domain.ErrInvalidInput)
	}
	logger.Debug("Query: %q, limit: %d", query, limit)

	// Empty store short-circuits before any provider call.
	count, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if count == 0 {
		logger.Info("Store is empty, nothing to recommend")
		msg := emptyStoreMessage
		return &domain.Recommendation{
			Query:       query,
			Results:     []domain.MatchResult{},
			Explanation: &msg,
			Status:      domain.StatusEmptyStore,
		}, nil
	}

	// Embed the query. Failure here is fatal: without a vector there is
	// nothing to rank.
	logger.Debug("Generating query embedding...")
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	hits, err := s.index.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector search: %d hits", len(hits))

	ranked := s.ranker.Rank(hits, limit, opts.Threshold)

	// Nothing above the threshold: return guidance rather than weak
	// matches.
	if len(ranked) == 0 {
		logger.Info("Best similarity %.3f below threshold, returning guidance", MaxSimilarity(hits))
		return s.lowConfidenceResponse(ctx, query), nil
	}

	results, err := s.hydrate(ctx, ranked)
	if err != nil {
		return nil, fmt.Errorf("hydrate results: %w", err)
	}
	if len(results) == 0 {
		// Every ranked document vanished between search and hydration.
		return s.lowConfidenceResponse(ctx, query), nil
	}

	rec := &domain.Recommendation{
		Query:   query,
		Results: results,
		Status:  domain.StatusOK,
	}

	if s.completion == nil {
		logger.Debug("No completion service, skipping explanation")
		rec.Status = domain.StatusDegraded
		return rec, nil
	}

	explanation, err := s.completion.Complete(ctx,
		recommendSystemPrompt,
		buildRecommendPrompt(query, results),
		driven.CompleteOptions{MaxTokens: synthMaxTokens, Temperature: synthTemperature},
	)
	if err != nil || explanation == "" {
		logger.Warn("Explanation synthesis failed: %v (returning ranked results only)", err)
		rec.Status = domain.StatusDegraded
		return rec, nil
	}

	rec.Explanation = &explanation
	logger.Info("Recommendation: %d results with explanation", len(results))
	return rec, nil
}

// lowConfidenceResponse builds the below-threshold response. Guidance
// comes from the model when available, with a static fallback so the
// caller always gets something actionable.
func (s *RecommendService) lowConfidenceResponse(ctx context.Context, query string) *domain.Recommendation {
	msg := lowConfidenceFallback
	if s.completion != nil {
		guidance, err := s.completion.Complete(ctx,
			guidanceSystemPrompt,
			buildGuidancePrompt(query),
			driven.CompleteOptions{MaxTokens: guidanceMaxTokens, Temperature: synthTemperature},
		)
		if err == nil && guidance != "" {
			msg = guidance
		} else if err != nil {
			logger.Warn("Guidance synthesis failed: %v (using fallback)", err)
		}
	}

	return &domain.Recommendation{
		Query:       query,
		Results:     []domain.MatchResult{},
		Explanation: &msg,
		Status:      domain.StatusLowConfidence,
	}
}

// hydrate converts ranked IDs to full match results. Documents deleted
// between search and hydration are skipped, never partially returned.
func (s *RecommendService) hydrate(ctx context.Context, ranked []domain.RankedResult) ([]domain.MatchResult, error) {
	results := make([]domain.MatchResult, 0, len(ranked))
	for _, r := range ranked {
		doc, err := s.store.GetDocument(ctx, r.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Document was deleted, skip it
				continue
			}
			return nil, fmt.Errorf("get document %s: %w", r.DocumentID, err)
		}

		results = append(results, domain.MatchResult{
			DocumentID: doc.ID,
			Score:      r.Score,
			Preview:    doc.Preview(200),
			Metadata:   doc.Metadata,
		})
	}
	return results, nil
}
