package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui"
)

// runRecommendTUI launches the interactive matching UI. Reached via
// `matcha recommend` with no query on a terminal.
func runRecommendTUI(cmd *cobra.Command) error {
	// Panic recovery keeps stack traces readable when the terminal is
	// in the alternate screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	app := tui.NewApp(tui.Ports{
		Recommend: recommendService,
		Ingest:    ingestService,
	})
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
