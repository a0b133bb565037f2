// Package tui implements the interactive matching interface using
// Bubbletea's Elm architecture: a query input, a ranked match list and
// a status bar in a single view.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/components/input"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/components/list"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/components/status"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/keymap"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/messages"
	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/styles"
	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// App is the TUI application model.
type App struct {
	ports  Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input     *input.QueryInput
	list      *list.MatchList
	statusbar *status.Bar

	// explanation is the synthesised summary for the current results.
	explanation string

	// focusInput is true while typing, false while browsing results.
	focusInput bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the TUI application with the given ports.
func NewApp(ports Ports) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewMatchList(s),
		statusbar:  status.NewBar(s, km),
		focusInput: true,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.Init(), a.countDocuments())
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.input.SetWidth(msg.Width)
		a.list.SetDimensions(msg.Width, msg.Height-6)
		a.statusbar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.RecommendCompleted:
		a.handleRecommendCompleted(msg)
		return a, nil

	case messages.StoreCounted:
		a.statusbar.SetDocCount(msg.Count)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if keymap.Matches(msg.String(), a.keymap.Quit) {
		return a, tea.Quit
	}

	// Enter in input mode submits the query
	if msg.Type == tea.KeyEnter && a.focusInput {
		query := strings.TrimSpace(a.input.Value())
		if query == "" {
			return a, nil
		}
		a.statusbar.SetState(status.StateMatching)
		a.focusInput = false
		a.input.Blur()
		return a, a.performRecommend(query)
	}

	// Input mode: all other keys go to the input
	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	// Results mode
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyUp:
		a.list.MoveUp()
		return a, nil
	case tea.KeyDown:
		a.list.MoveDown()
		return a, nil
	}

	switch msg.String() {
	case "k":
		a.list.MoveUp()
	case "j":
		a.list.MoveDown()
	case "n":
		a.focusInput = true
		a.input.Reset()
		a.input.Focus()
		a.list.SetResults(nil)
		a.explanation = ""
		a.statusbar.Clear()
	}
	return a, nil
}

// handleRecommendCompleted applies a finished recommendation.
func (a *App) handleRecommendCompleted(msg messages.RecommendCompleted) {
	if msg.Err != nil {
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(msg.Err.Error())
		a.focusInput = true
		a.input.Focus()
		return
	}

	rec := msg.Recommendation
	a.list.SetResults(rec.Results)
	a.explanation = ""
	if rec.Explanation != nil {
		a.explanation = *rec.Explanation
	}

	switch rec.Status {
	case domain.StatusEmptyStore:
		a.statusbar.SetState(status.StateEmptyStore)
		a.focusInput = true
		a.input.Focus()
	case domain.StatusLowConfidence:
		a.statusbar.SetState(status.StateLowConfidence)
		a.focusInput = true
		a.input.Focus()
	case domain.StatusOK, domain.StatusDegraded:
		a.statusbar.SetState(status.StateResults)
		a.statusbar.SetResultCount(len(rec.Results))
	}
}

// performRecommend runs the matching query as a Bubbletea command.
func (a *App) performRecommend(query string) tea.Cmd {
	return func() tea.Msg {
		rec, err := a.ports.Recommend.Recommend(a.ctx, query, domain.RecommendOptions{})
		return messages.RecommendCompleted{Recommendation: rec, Err: err}
	}
}

// countDocuments fetches the store size for the status bar.
func (a *App) countDocuments() tea.Cmd {
	if a.ports.Ingest == nil {
		return nil
	}
	return func() tea.Msg {
		docs, err := a.ports.Ingest.List(a.ctx)
		if err != nil {
			return messages.StoreCounted{Count: 0}
		}
		return messages.StoreCounted{Count: len(docs)}
	}
}

// View renders the application.
func (a *App) View() string {
	sections := []string{
		a.input.View(),
		"",
		a.list.View(),
	}

	if a.explanation != "" {
		width := a.width - 4
		if width < 20 {
			width = 20
		}
		sections = append(sections, "", a.styles.Explanation.Width(width).Render(a.explanation))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pin the status bar to the bottom
	bodyHeight := lipgloss.Height(body)
	padding := a.height - bodyHeight - 2
	if padding > 0 {
		body += strings.Repeat("\n", padding)
	}

	return body + "\n" + a.statusbar.View()
}
