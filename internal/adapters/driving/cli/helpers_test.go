package cli

import (
	"context"
	"time"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	ingestedID   string
	ingestedText string
	removedID    string
	docs         []domain.Document
	doc          *domain.Document
	err          error
}

func (m *mockIngestService) Ingest(_ context.Context, id, text string, _ map[string]any) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if id == "" {
		id = "generated-id"
	}
	m.ingestedID = id
	m.ingestedText = text
	return id, nil
}

func (m *mockIngestService) Remove(_ context.Context, id string) error {
	m.removedID = id
	return m.err
}

func (m *mockIngestService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockIngestService) List(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

// mockRecommendService is a mock implementation of driving.RecommendService.
type mockRecommendService struct {
	rec *domain.Recommendation
	err error
}

func (m *mockRecommendService) Recommend(
	_ context.Context, query string, _ domain.RecommendOptions,
) (*domain.Recommendation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.rec != nil {
		return m.rec, nil
	}
	explanation := "Strong match on backend experience."
	return &domain.Recommendation{
		Query: query,
		Results: []domain.MatchResult{
			{DocumentID: "cv-1", Score: 0.82, Preview: "Senior Go developer..."},
		},
		Explanation: &explanation,
		Status:      domain.StatusOK,
	}, nil
}

// setupTestServices installs mock services and returns a cleanup func
// that restores the previous state.
func setupTestServices() func() {
	oldIngest := ingestService
	oldRecommend := recommendService

	ingestService = &mockIngestService{
		docs: []domain.Document{
			{
				ID:        "cv-1",
				Text:      "Senior Go developer with ten years of experience",
				Metadata:  map[string]any{"filename": "cv-1.txt"},
				CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
			},
		},
		doc: &domain.Document{
			ID:          "cv-1",
			ContentHash: "abc123",
			Text:        "Senior Go developer with ten years of experience",
			Metadata:    map[string]any{"filename": "cv-1.txt"},
			CreatedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	}
	recommendService = &mockRecommendService{}

	return func() {
		ingestService = oldIngest
		recommendService = oldRecommend
	}
}
