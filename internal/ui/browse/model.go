package browse

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is an interactive question bank browser built on Bubble Tea.
type Model struct {
	state   State
	table   table.Model
	noColor bool
}

// Options configures the browser.
type Options struct {
	NoColor bool
}

// NewModel constructs a browser over state.
func NewModel(state State, opts Options) Model {
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows(rowsForState(state, opts.NoColor)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{state: state, table: t, noColor: opts.NoColor}
}

// State returns the current browser state.
func (m Model) State() State {
	return m.state
}

// Cursor returns the index of the selected visible question.
func (m Model) Cursor() int {
	return m.table.Cursor()
}

// Init has no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation, filtering, and resize.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-7, 3))
		m.table.SetColumns(columnsForWidth(typed.Width))
		return m, nil
	case tea.KeyMsg:
		switch typed.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "l":
			m.state = CycleLevel(m.state)
			m.table.SetRows(rowsForState(m.state, m.noColor))
			m.table.SetCursor(0)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	help := stylize("up/down: move  l: cycle level  q: quit", m.noColor, lipgloss.Color("244"))
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.noColor),
		renderSummary(m.state, m.noColor),
		m.table.View(),
		renderDetail(m.state, m.table.Cursor(), m.noColor),
		help,
	)
}
