package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	// CursorStyle highlights the selected picker entry.
	CursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"ok":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"fetched": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"stored":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),

		// Active states
		"loading":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"running":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"migrating": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Skipped / warning
		"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"missing": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"empty":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		// Error
		"error":  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"failed": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		"pending": lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
