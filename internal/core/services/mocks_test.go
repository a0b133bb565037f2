package services

import (
	"context"
	"errors"

	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
)

// mockEmbedder returns preset vectors per normalised text and counts
// provider calls.
type mockEmbedder struct {
	vectors map[string][]float32
	fail    error
	calls   int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{vectors: make(map[string][]float32)}
}

func (m *mockEmbedder) set(text string, vec []float32) {
	m.vectors[text] = vec
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.fail != nil {
		return nil, m.fail
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int                { return 3 }
func (m *mockEmbedder) ModelName() string              { return "mock-embed" }
func (m *mockEmbedder) Ping(ctx context.Context) error { return nil }
func (m *mockEmbedder) Close() error                   { return nil }

// mockCompletion returns a canned response or a failure.
type mockCompletion struct {
	response    string
	fail        error
	calls       int
	lastSystem  string
	lastPrompt  string
	lastOptions driven.CompleteOptions
}

func (m *mockCompletion) Complete(_ context.Context, system, prompt string, opts driven.CompleteOptions) (string, error) {
	m.calls++
	m.lastSystem = system
	m.lastPrompt = prompt
	m.lastOptions = opts
	if m.fail != nil {
		return "", m.fail
	}
	return m.response, nil
}

func (m *mockCompletion) ModelName() string              { return "mock-llm" }
func (m *mockCompletion) Ping(ctx context.Context) error { return nil }
func (m *mockCompletion) Close() error                   { return nil }

// mockCache is a trivial embedding cache with call tracking.
type mockCache struct {
	entries map[string][]float32
	evicted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]float32)}
}

func (m *mockCache) Get(hash string) ([]float32, bool) {
	vec, ok := m.entries[hash]
	return vec, ok
}

func (m *mockCache) Put(hash string, embedding []float32) {
	m.entries[hash] = embedding
}

func (m *mockCache) Evict(hash string) {
	delete(m.entries, hash)
	m.evicted = append(m.evicted, hash)
}

func (m *mockCache) Len() int { return len(m.entries) }

// failingIndex rejects every write, for rollback tests.
type failingIndex struct {
	driven.VectorIndex
}

func (f *failingIndex) Add(context.Context, string, []float32) error {
	return errors.New("index full")
}
