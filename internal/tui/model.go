package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
)

// Model is the bubbletea model for the dataset editor.
type Model struct {
	table  *dataset.Table
	suite  expect.Suite
	styles Styles

	results []expect.EntryResult
	runErr  error

	row, col int
	editing  bool
	input    textinput.Model
}

// NewModel creates the editor model over a table and suite, with the suite
// evaluated once up front.
func NewModel(table *dataset.Table, suite expect.Suite) Model {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 16

	m := Model{
		table:  table,
		suite:  suite,
		styles: DefaultStyles(),
		input:  input,
	}
	m.evaluate()
	return m
}

// Run starts the editor and blocks until the user quits. A check fault
// aborts the program and is returned to the caller.
func Run(table *dataset.Table, suite expect.Suite) error {
	final, err := tea.NewProgram(NewModel(table, suite), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.runErr != nil {
		return m.runErr
	}
	return nil
}

// evaluate re-runs the suite against the current table. A fault is recorded
// and ends the session on the next update.
func (m *Model) evaluate() {
	m.results, m.runErr = expect.Run(m.table, m.suite)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.runErr != nil {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNavigation(msg)
	}

	return m, nil
}

func (m Model) updateNavigation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < m.table.NumRows()-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < m.table.NumColumns()-1 {
			m.col++
		}

	case "enter":
		if m.table.NumRows() == 0 {
			return m, nil
		}
		cell, err := m.table.Cell(m.row, m.col)
		if err != nil {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(dataset.FormatCell(cell))
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "a":
		m.table.AppendRow()
		m.row = m.table.NumRows() - 1
		m.evaluate()
		if m.runErr != nil {
			return m, tea.Quit
		}

	case "d":
		if m.table.NumRows() == 0 {
			return m, nil
		}
		if err := m.table.DeleteRow(m.row); err == nil {
			if m.row >= m.table.NumRows() && m.row > 0 {
				m.row--
			}
			m.evaluate()
			if m.runErr != nil {
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cols := m.table.Columns()
		if err := m.table.SetCell(m.row, cols[m.col], m.input.Value()); err == nil {
			m.evaluate()
		}
		m.editing = false
		m.input.Blur()
		if m.runErr != nil {
			return m, tea.Quit
		}
		return m, nil

	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.runErr != nil {
		return m.styles.Fail.Render("check fault: "+m.runErr.Error()) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("leapcheck"))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewTable())
	sb.WriteString("\n")
	sb.WriteString(m.viewResults())
	sb.WriteString(m.styles.Help.Render(m.helpLine()))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) viewTable() string {
	cols := m.table.Columns()
	rows := m.table.Rows()

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	for i, c := range cols {
		sb.WriteString(m.styles.Header.Width(widths[i]).Render(c))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(m.styles.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for r, row := range rows {
		for c, cell := range row {
			switch {
			case m.editing && r == m.row && c == m.col:
				sb.WriteString(m.styles.Editing.Width(widths[c]).Render(m.input.View()))
			case r == m.row && c == m.col:
				sb.WriteString(m.styles.Selected.Width(widths[c]).Render(cell))
			default:
				sb.WriteString(m.styles.Cell.Width(widths[c]).Render(cell))
			}
		}
		sb.WriteString("\n")
	}

	if len(rows) == 0 {
		sb.WriteString(m.styles.Muted.Render("(no rows)"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) viewResults() string {
	var sb strings.Builder
	passed := len(m.results) - expect.Failed(m.results)
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Expectations (%d/%d passing)", passed, len(m.results))))
	sb.WriteString("\n")

	for _, r := range m.results {
		mark := m.styles.Pass.Render("✓")
		if !r.Result.Success {
			mark = m.styles.Fail.Render("✗")
		}
		sb.WriteString(fmt.Sprintf("  %s %s  %s\n", mark, r.Entry.Column, r.Entry.Check))
	}
	if len(m.results) == 0 {
		sb.WriteString(m.styles.Muted.Render("  (empty suite)"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) helpLine() string {
	if m.editing {
		return "enter apply · esc cancel"
	}
	return "arrows/hjkl move · enter edit · a add row · d delete row · q quit"
}
