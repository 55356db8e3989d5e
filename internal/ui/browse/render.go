package browse

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the source line.
func renderHeader(state State, noColor bool) string {
	line := "Bank " + state.Source
	if !state.LastUpdated.IsZero() {
		line += " | Updated: " + state.LastUpdated.UTC().Format(time.RFC3339)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders totals and per-level counts.
func renderSummary(state State, noColor bool) string {
	visible := len(state.Visible())
	line := "Questions: " + fmtInt(visible)
	if visible != len(state.All) {
		line += " of " + fmtInt(len(state.All))
	}
	counts := state.LevelCounts()
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		line += " " + level + ": " + fmtInt(counts[level])
	}
	if state.Filter.Level != "" {
		line += " | Filter: " + state.Filter.Level
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderDetail renders the selected question with its choices.
func renderDetail(state State, index int, noColor bool) string {
	visible := state.Visible()
	if index < 0 || index >= len(visible) {
		return ""
	}
	q := visible[index]
	return lipgloss.JoinVertical(lipgloss.Left,
		formatText(q.Question, 400),
		formatChoices(q, noColor),
	)
}

// Render draws the bank once as a static table, for non-interactive output.
func Render(state State, noColor bool) string {
	rows := rowsForState(state, noColor)
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)
	styles := tableStyles(noColor)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(state, noColor),
		renderSummary(state, noColor),
		t.View(),
	)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
