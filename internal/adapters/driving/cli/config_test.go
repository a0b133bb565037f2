package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/config/file"
)

// setupTestConfig points the CLI at a throwaway config directory.
func setupTestConfig(t *testing.T) func() {
	t.Helper()
	oldStore := configStore
	oldDir := configDir

	configDir = t.TempDir()
	cfg, err := file.NewConfigStore(configDir)
	require.NoError(t, err)
	configStore = cfg

	return func() {
		configStore = oldStore
		configDir = oldDir
	}
}

func TestConfigSetGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "embedding.provider", "ollama"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Set embedding.provider")

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "embedding.provider"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "ollama")
}

func TestConfigGet_UnsetKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "no.such.key"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigShow_MasksAPIKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	require.NoError(t, configStore.Set(file.KeyEmbeddingAPIKey, "sk-verysecretapikey123"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.NotContains(t, buf.String(), "sk-verysecretapikey123")
	assert.Contains(t, buf.String(), "sk-v...y123")
}

func TestParseConfigValue(t *testing.T) {
	assert.Equal(t, true, parseConfigValue("true"))
	assert.Equal(t, false, parseConfigValue("false"))
	assert.Equal(t, int64(42), parseConfigValue("42"))
	assert.Equal(t, 0.35, parseConfigValue("0.35"))
	assert.Equal(t, "ollama", parseConfigValue("ollama"))
}
