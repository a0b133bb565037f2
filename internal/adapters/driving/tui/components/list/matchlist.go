// Package list provides the ranked match list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/talenta-labs/matcha-cli/internal/adapters/driving/tui/styles"
	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// MatchList displays ranked matches in a navigable list.
type MatchList struct {
	results  []domain.MatchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewMatchList creates a new match list component.
func NewMatchList(s *styles.Styles) *MatchList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &MatchList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the match list.
func (m *MatchList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (m *MatchList) Update(msg tea.Msg) (*MatchList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			m.MoveUp()
		case tea.KeyDown:
			m.MoveDown()
		default:
		}
		switch msg.String() {
		case "k":
			m.MoveUp()
		case "j":
			m.MoveDown()
		}
	}
	return m, nil
}

// View renders the match list.
func (m *MatchList) View() string {
	if len(m.results) == 0 {
		return m.styles.Muted.Render("No matches")
	}

	lines := make([]string, 0, len(m.results)*2+2)

	header := m.styles.Title.Render(fmt.Sprintf("Matches (%d)", len(m.results)))
	lines = append(lines, header, "")

	// Each match takes two lines plus spacing.
	visibleCount := (m.height - 4) / 3
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if m.selected >= visibleCount {
		start = m.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(m.results) {
		end = len(m.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, m.renderMatch(i, &m.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderMatch formats a single ranked match with its preview.
func (m *MatchList) renderMatch(index int, result *domain.MatchResult) string {
	indicator := "  "
	if index == m.selected {
		indicator = "> "
	}

	label := result.DocumentID
	if name, ok := result.Metadata["filename"].(string); ok && name != "" {
		label = name
	}

	maxLabelLen := m.width - 20
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	if len(label) > maxLabelLen {
		label = label[:maxLabelLen-3] + "..."
	}

	score := fmt.Sprintf("%.2f", result.Score)

	var titleLine string
	if index == m.selected {
		titleLine = m.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLabelLen, label, score))
	} else {
		titleLine = m.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxLabelLen, label)) +
			m.styles.Muted.Render(score)
	}

	preview := result.Preview
	maxPreviewLen := m.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	if len(preview) > maxPreviewLen {
		preview = preview[:maxPreviewLen-3] + "..."
	}
	previewLine := m.styles.Muted.Render("    " + preview)

	return titleLine + "\n" + previewLine
}

// SetResults updates the match list.
func (m *MatchList) SetResults(results []domain.MatchResult) {
	m.results = results
	m.selected = 0
}

// Results returns the current matches.
func (m *MatchList) Results() []domain.MatchResult {
	return m.results
}

// Selected returns the index of the selected match.
func (m *MatchList) Selected() int {
	return m.selected
}

// SelectedResult returns the currently selected match, or nil if none.
func (m *MatchList) SelectedResult() *domain.MatchResult {
	if len(m.results) == 0 || m.selected < 0 || m.selected >= len(m.results) {
		return nil
	}
	return &m.results[m.selected]
}

// MoveUp moves selection up.
func (m *MatchList) MoveUp() {
	if m.selected > 0 {
		m.selected--
	}
}

// MoveDown moves selection down.
func (m *MatchList) MoveDown() {
	if m.selected < len(m.results)-1 {
		m.selected++
	}
}

// SetDimensions sets the component dimensions.
func (m *MatchList) SetDimensions(width, height int) {
	m.width = width
	m.height = height
}

// Count returns the number of matches.
func (m *MatchList) Count() int {
	return len(m.results)
}

// IsEmpty returns whether the list is empty.
func (m *MatchList) IsEmpty() bool {
	return len(m.results) == 0
}
