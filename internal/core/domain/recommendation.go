package domain

// RecommendStatus describes the outcome of a recommendation request beyond
// the result list itself, so callers can render an empty list distinctly
// from a provider failure.
type RecommendStatus string

const (
	// StatusOK means ranked results and an explanation were produced.
	StatusOK RecommendStatus = "ok"

	// StatusEmptyStore means no documents have been ingested yet.
	StatusEmptyStore RecommendStatus = "empty_store"

	// StatusLowConfidence means the store has documents but nothing scored
	// above the similarity threshold. Not an error.
	StatusLowConfidence RecommendStatus = "low_confidence"

	// StatusDegraded means ranked results were produced but the explanation
	// could not be synthesised. The results remain valid.
	StatusDegraded RecommendStatus = "degraded"
)

// RankedResult pairs a document with its similarity score.
// Score is cosine similarity rescaled to [0, 1].
type RankedResult struct {
	// DocumentID is the matched document.
	DocumentID string

	// Score is the similarity score in [0, 1].
	Score float64
}

// MatchResult is a hydrated ranked result returned to callers.
// It carries value copies only, never references into the index.
type MatchResult struct {
	// DocumentID is the matched document.
	DocumentID string

	// Score is the similarity score in [0, 1].
	Score float64

	// Preview is the leading portion of the document text.
	Preview string

	// Metadata is the caller-owned metadata bag, passed through unchanged.
	Metadata map[string]any
}

// Recommendation is the composite result of a recommend request.
type Recommendation struct {
	// Query is the original query text.
	Query string

	// Results are the ranked matches, best first.
	Results []MatchResult

	// Explanation is the synthesised natural-language summary of the match,
	// or nil when synthesis failed or produced nothing to explain.
	Explanation *string

	// Status qualifies the result set.
	Status RecommendStatus
}

// RecommendOptions configures a recommend request.
type RecommendOptions struct {
	// Limit is the maximum number of results (1-20, default 5).
	Limit int

	// Threshold overrides the configured similarity threshold when > 0.
	Threshold float64
}

// Limit bounds for RecommendOptions.
const (
	// DefaultLimit is used when the caller does not specify a limit.
	DefaultLimit = 5

	// MaxLimit is the largest limit a caller may request.
	MaxLimit = 20

	// DefaultThreshold is the similarity cutoff below which results are
	// discarded. Calibrated empirically; tune per corpus.
	DefaultThreshold = 0.30
)
