package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change matcha configuration.

Well-known keys:
  embedding.provider     openai (default) or ollama
  embedding.model        embedding model name
  embedding.api_key      provider API key
  completion.provider    openai (default) or ollama
  completion.model       completion model name
  recommend.threshold    similarity cutoff (default 0.30)
  storage.data_dir       database location`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// ensureConfigStore opens just the config file, without requiring a
// working provider the way ensureServices does.
func ensureConfigStore() error {
	if configStore != nil {
		return nil
	}
	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = cfg
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	keys := []string{
		file.KeyEmbeddingProvider,
		file.KeyEmbeddingModel,
		file.KeyEmbeddingAPIKey,
		file.KeyEmbeddingBaseURL,
		file.KeyEmbeddingDims,
		file.KeyEmbeddingRPS,
		file.KeyCompletionProvider,
		file.KeyCompletionModel,
		file.KeyCompletionAPIKey,
		file.KeyCompletionBaseURL,
		file.KeyCompletionRPS,
		file.KeyIndexLists,
		file.KeyIndexProbes,
		file.KeyIndexTrainThreshold,
		file.KeyRecommendThreshold,
		file.KeyRecommendLimit,
		file.KeyStorageDataDir,
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, ok := configStore.Get(key)
		if !ok {
			continue
		}
		if strings.HasSuffix(key, "api_key") {
			value = maskAPIKey(fmt.Sprintf("%v", value))
		}
		cmd.Printf("%s = %v\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %s is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureConfigStore(); err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if key == "" {
		return errors.New("key must not be empty")
	}

	if err := configStore.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// parseConfigValue keeps numeric and boolean values typed in the TOML
// file instead of storing everything as strings.
func parseConfigValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	var i int64
	if _, err := fmt.Sscanf(raw, "%d", &i); err == nil && fmt.Sprintf("%d", i) == raw {
		return i
	}
	var f float64
	if _, err := fmt.Sscanf(raw, "%g", &f); err == nil && strings.ContainsAny(raw, ".eE") {
		return f
	}
	return raw
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
