package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest dropped files",
	Long: `Watches a directory for extracted .txt and .md files and keeps the
store in sync: new or changed files are ingested, deleted files are
removed. Runs until interrupted.

This is the integration point for external text-extraction pipelines:
point them at the watched directory and matcha picks up their output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	w, err := watcher.New(dir, ingestService, watcher.Config{})
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	return w.Run(cmd.Context())
}
