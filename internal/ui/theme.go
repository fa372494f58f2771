package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the form styles.
type Theme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
	Dialog lipgloss.Style
	Error  lipgloss.Style
}

// DefaultTheme returns the default styles.
func DefaultTheme() Theme {
	return Theme{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7C9CBF")).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E5E9F0")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EBCB8B")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#BF616A")).
			Padding(1, 2),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BF616A")),
	}
}
