// Package tui provides the interactive terminal UI: an editable dataset
// grid with the expectation suite re-evaluated after every change.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the editor model.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Selected lipgloss.Style
	Editing  lipgloss.Style
	Pass     lipgloss.Style
	Fail     lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default editor styling.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Header:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Selected: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		Editing:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("3")),
		Pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:    lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
