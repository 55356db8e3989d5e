package browse

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the browser.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252")).Bold(true)
	return styles
}

func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 13},
		{Title: "Skill", Width: 22},
		{Title: "Grade", Width: 5},
		{Title: "Level", Width: 11},
		{Title: "Question", Width: textLimit},
	}
}

// columnsForWidth widens the question column to fill the terminal.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for _, col := range columns[:len(columns)-1] {
		fixed += col.Width + 2
	}
	if rest := width - fixed - 2; rest > textLimit {
		columns[len(columns)-1].Width = rest
	}
	return columns
}

// rowsForState converts visible questions into table rows.
func rowsForState(state State, noColor bool) []table.Row {
	visible := state.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, q := range visible {
		rows = append(rows, table.Row{
			formatID(q.ID),
			q.Skill,
			string(q.Grade),
			formatLevel(q, noColor),
			formatText(q.Question, 200),
		})
	}
	return rows
}
