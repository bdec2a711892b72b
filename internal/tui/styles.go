package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles banners and column headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	DetailStyle  = lipgloss.NewStyle().Faint(true)

	statusStyles = map[string]lipgloss.Style{
		"ok":             SuccessStyle,
		"functional":     SuccessStyle,
		"running":        InfoStyle,
		"not functional": WarnStyle,
		"not found":      WarnStyle,
		"missing":        ErrorStyle,
		"error":          ErrorStyle,
		"pending":        DetailStyle,
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
