package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7AA2F7")
	ColorSecondary = lipgloss.Color("#9ECE6A")
	ColorMuted     = lipgloss.Color("#565F89")
	ColorError     = lipgloss.Color("#F7768E")
	ColorWarning   = lipgloss.Color("#E0AF68")

	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleDownloaded = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	StyleSkipped = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
