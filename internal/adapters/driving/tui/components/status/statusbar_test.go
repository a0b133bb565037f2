package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*Bar)
		expected string
	}{
		{
			name:     "ready state",
			setup:    func(_ *Bar) {},
			expected: "Ready",
		},
		{
			name: "ready with document count",
			setup: func(b *Bar) {
				b.SetDocCount(12)
			},
			expected: "Ready (12 documents)",
		},
		{
			name: "matching state",
			setup: func(b *Bar) {
				b.SetState(StateMatching)
			},
			expected: "Matching...",
		},
		{
			name: "results state shows count",
			setup: func(b *Bar) {
				b.SetState(StateResults)
				b.SetResultCount(3)
			},
			expected: "3 matches",
		},
		{
			name: "empty store state",
			setup: func(b *Bar) {
				b.SetState(StateEmptyStore)
			},
			expected: "No documents ingested",
		},
		{
			name: "low confidence state",
			setup: func(b *Bar) {
				b.SetState(StateLowConfidence)
			},
			expected: "No close matches",
		},
		{
			name: "error state shows message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("provider down")
			},
			expected: "provider down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			tt.setup(bar)

			assert.Contains(t, bar.View(), tt.expected)
		})
	}
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetResultCount(5)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
}
