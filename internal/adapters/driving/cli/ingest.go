package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	ingestID       string
	ingestMetadata []string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file|-]",
	Short: "Ingest a document from a file or stdin",
	Long: `Reads extracted plain text from a file (or stdin when the argument
is "-"), embeds it and stores it for matching.

Re-ingesting with the same --id replaces the document. Unchanged text
reuses the cached embedding without a provider call.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestID, "id", "", "document ID (generated when empty)")
	ingestCmd.Flags().StringArrayVarP(&ingestMetadata, "metadata", "m", nil, "metadata entry as key=value (repeatable)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	text, filename, err := readIngestInput(cmd, args[0])
	if err != nil {
		return err
	}

	metadata, err := parseMetadata(ingestMetadata)
	if err != nil {
		return err
	}
	if filename != "" {
		if _, ok := metadata["filename"]; !ok {
			metadata["filename"] = filename
		}
	}
	metadata["ingested_at"] = time.Now().UTC().Format(time.RFC3339)

	id, err := ingestService.Ingest(cmd.Context(), ingestID, text, metadata)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested document %s\n", id)
	return nil
}

// readIngestInput returns the document text and, for file input, the
// base filename for metadata.
func readIngestInput(cmd *cobra.Command, arg string) (text, filename string, err error) {
	if arg == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", arg, err)
	}
	return string(data), filepath.Base(arg), nil
}

func parseMetadata(entries []string) (map[string]any, error) {
	metadata := make(map[string]any, len(entries)+2)
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid metadata entry %q, expected key=value", entry)
		}
		metadata[key] = value
	}
	return metadata, nil
}
