package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#4A67FF")
	danger = lipgloss.Color("#E26F6F")
	muted  = lipgloss.Color("240")

	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 0).
			Foreground(lipgloss.Color("#000000"))

	labelStyle = lipgloss.NewStyle().Foreground(muted)

	fieldErrorStyle = lipgloss.NewStyle().Foreground(danger)

	noticeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Foreground(danger)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Foreground(muted)

	focusedButtonStyle = buttonStyle.
				BorderForeground(accent).
				Foreground(accent).
				Bold(true)

	disabledButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("#99A9FF")).
				BorderForeground(lipgloss.Color("#99A9FF"))

	greetingStyle = lipgloss.NewStyle().Padding(1, 0)
	nameStyle     = lipgloss.NewStyle().Bold(true)
)
