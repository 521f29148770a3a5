package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ltree/internal/ui"
)

// chromeHeight is the number of screen lines that are not tree rows:
// title, column header, status, help.
const chromeHeight = 4

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(ui.ColorMuted).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().Reverse(true)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorSecondary).
			Padding(1, 2)
)
