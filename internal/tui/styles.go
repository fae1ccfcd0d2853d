package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#2F6FDE", Dark: "#7AA2F7"}
	muted  = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#666666"}
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	cursorStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	doneStyle      = lipgloss.NewStyle().Foreground(muted).Strikethrough(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(muted)
	activeFilter   = lipgloss.NewStyle().Foreground(accent).Underline(true)
	inactiveFilter = lipgloss.NewStyle().Foreground(muted)
	footerStyle    = lipgloss.NewStyle().MarginTop(1)
	inputStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
	focusedInput   = inputStyle.BorderForeground(accent)
)
