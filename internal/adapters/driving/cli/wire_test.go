package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/config/file"
	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

func newWireTestConfig(t *testing.T) *file.ConfigStore {
	t.Helper()
	cfg, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestBuildEmbedderOllama(t *testing.T) {
	cfg := newWireTestConfig(t)
	require.NoError(t, cfg.Set(file.KeyEmbeddingProvider, "ollama"))
	require.NoError(t, cfg.Set(file.KeyEmbeddingRPS, 4.0))

	embedder, err := buildEmbedder(cfg)
	require.NoError(t, err)
	assert.NotNil(t, embedder)
}

func TestBuildEmbedderOpenAI(t *testing.T) {
	cfg := newWireTestConfig(t)
	require.NoError(t, cfg.Set(file.KeyEmbeddingAPIKey, "sk-test"))
	require.NoError(t, cfg.Set(file.KeyEmbeddingRPS, 4.0))

	embedder, err := buildEmbedder(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultEmbeddingDims, embedder.Dimensions())
}

func TestBuildEmbedderUnconfigured(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := newWireTestConfig(t)

	_, err := buildEmbedder(cfg)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestBuildEmbedderUnknownProvider(t *testing.T) {
	cfg := newWireTestConfig(t)
	require.NoError(t, cfg.Set(file.KeyEmbeddingProvider, "bedrock"))

	_, err := buildEmbedder(cfg)
	assert.Error(t, err)
}

func TestBuildCompletionOllama(t *testing.T) {
	cfg := newWireTestConfig(t)
	require.NoError(t, cfg.Set(file.KeyCompletionProvider, "ollama"))
	require.NoError(t, cfg.Set(file.KeyCompletionRPS, 4.0))

	assert.NotNil(t, buildCompletion(cfg))
}

func TestBuildCompletionUnconfiguredIsNil(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	cfg := newWireTestConfig(t)

	assert.Nil(t, buildCompletion(cfg))
}
