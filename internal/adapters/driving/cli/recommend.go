package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

var (
	recommendLimit     int
	recommendJSON      bool
	recommendThreshold float64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [query]",
	Short: "Recommend matching documents for a query",
	Long: `Ranks ingested documents against a natural-language query using
vector similarity, and explains the best matches with an LLM when a
completion provider is configured.

Without a query argument on an interactive terminal, opens the TUI.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", domain.DefaultLimit, "maximum number of results (1-20)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output results as JSON")
	recommendCmd.Flags().Float64Var(&recommendThreshold, "threshold", 0, "similarity cutoff override (0 = configured default)")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runRecommendTUI(cmd)
		}
		return errors.New("query argument required when not on a terminal")
	}

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}
	if recommendService == nil {
		return errors.New("recommend service not configured")
	}

	opts := domain.RecommendOptions{
		Limit:     recommendLimit,
		Threshold: recommendThreshold,
	}

	rec, err := recommendService.Recommend(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}

	if recommendJSON {
		return outputRecommendJSON(cmd, rec)
	}
	return outputRecommendTable(cmd, rec)
}

func outputRecommendJSON(cmd *cobra.Command, rec *domain.Recommendation) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRecommendTable(cmd *cobra.Command, rec *domain.Recommendation) error {
	switch rec.Status {
	case domain.StatusEmptyStore:
		cmd.Println("No documents ingested yet.")
	case domain.StatusLowConfidence:
		cmd.Println("No close matches found.")
	case domain.StatusDegraded:
		cmd.Println("Matches (explanation unavailable):")
	default:
		cmd.Println("Matches:")
	}
	cmd.Println()

	for i := range rec.Results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, rec.Results[i].DocumentID, rec.Results[i].Score)
		if name, ok := rec.Results[i].Metadata["filename"].(string); ok && name != "" {
			cmd.Printf("      File: %s\n", name)
		}
		if rec.Results[i].Preview != "" {
			cmd.Printf("      %s\n", rec.Results[i].Preview)
		}
		cmd.Println()
	}

	if rec.Explanation != nil && *rec.Explanation != "" {
		cmd.Println(*rec.Explanation)
	}

	return nil
}
