// Package cli implements the matcha command-line interface using Cobra.
// Services are wired lazily on first use so metadata commands (version,
// help) work without any configuration.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talenta-labs/matcha-cli/internal/core/ports/driven"
	"github.com/talenta-labs/matcha-cli/internal/core/ports/driving"
	"github.com/talenta-labs/matcha-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services consumed by the commands. Wired by ensureServices, replaced
// directly in tests.
var (
	ingestService    driving.IngestService
	recommendService driving.RecommendService
	configStore      driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "matcha",
	Short: "Semantic CV/job matching from your terminal",
	Long: `Matcha matches CVs against job descriptions using vector embeddings.

Ingest extracted CV or job text, then ask for recommendations in natural
language. Results are ranked by semantic similarity and explained by an
LLM when one is configured.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.matcha)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ensureServices builds the service graph from configuration on first
// use. Tests bypass it by assigning the service vars directly.
func ensureServices(ctx context.Context) error {
	if ingestService != nil && recommendService != nil {
		return nil
	}

	deps, err := wireServices(ctx, configDir)
	if err != nil {
		return err
	}

	ingestService = deps.Ingest
	recommendService = deps.Recommend
	configStore = deps.Config
	return nil
}
