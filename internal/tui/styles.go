package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#89b4fa")
	dim    = lipgloss.Color("#7f849c")
	green  = lipgloss.Color("#a6e3a1")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
	sectionStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(dim)
	currentStyle   = lipgloss.NewStyle().Foreground(green)
	editorStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)
