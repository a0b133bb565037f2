package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyEmbeddingModel, "text-embedding-3-small"))
	assert.Equal(t, "text-embedding-3-small", store.GetString(KeyEmbeddingModel))
}

func TestGetMissingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.Equal(t, 0.0, store.GetFloat("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestTypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyEmbeddingDims, 1536))
	require.NoError(t, store.Set(KeyRecommendThreshold, 0.3))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, 1536, store.GetInt(KeyEmbeddingDims))
	assert.InDelta(t, 0.3, store.GetFloat(KeyRecommendThreshold), 1e-9)
	assert.True(t, store.GetBool("verbose"))
}

func TestGetFloatFromInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyRecommendThreshold, 1))
	assert.Equal(t, 1.0, store.GetFloat(KeyRecommendThreshold))
}

func TestPersistenceAcrossReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyIndexProbes, 4))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, reloaded.GetInt(KeyIndexProbes))
}

func TestLoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[embedding]\nprovider = \"openai\"\nmodel = \"text-embedding-3-small\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "openai", store.GetString(KeyEmbeddingProvider))
	assert.Equal(t, "text-embedding-3-small", store.GetString(KeyEmbeddingModel))
}

func TestConfigFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
