package tui

import "github.com/charmbracelet/lipgloss"

// Styles controls how the combobox is drawn.
type Styles struct {
	Label    lipgloss.Style
	Option   lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		Label:    lipgloss.NewStyle().Bold(true),
		Option:   lipgloss.NewStyle().PaddingLeft(2),
		Focused:  lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")),
		Selected: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("10")),
		Empty:    lipgloss.NewStyle().PaddingLeft(2).Faint(true).Italic(true),
		Status:   lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
	}
}
