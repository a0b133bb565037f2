package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRecommendStatus_Values tests the status constants
func TestRecommendStatus_Values(t *testing.T) {
	assert.Equal(t, RecommendStatus("ok"), StatusOK)
	assert.Equal(t, RecommendStatus("empty_store"), StatusEmptyStore)
	assert.Equal(t, RecommendStatus("low_confidence"), StatusLowConfidence)
	assert.Equal(t, RecommendStatus("degraded"), StatusDegraded)
}

// TestRecommendOptions_Defaults tests the option bounds
func TestRecommendOptions_Defaults(t *testing.T) {
	assert.Equal(t, 5, DefaultLimit)
	assert.Equal(t, 20, MaxLimit)
	assert.InDelta(t, 0.30, DefaultThreshold, 1e-9)
}
