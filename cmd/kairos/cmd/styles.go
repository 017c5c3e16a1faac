package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#94A3B8")
	colorAccent  = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	labelStyle = lipgloss.NewStyle().
		Foreground(colorMuted).
		Width(14)

	valueStyle = lipgloss.NewStyle().
		Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	nullStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Italic(true)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1)
)

// field renders one "label value" line
func field(label string, value interface{}) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		valueStyle.Render(fmt.Sprint(value)),
	)
}
