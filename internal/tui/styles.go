package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
	helperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	alertErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(0, 1)
	alertSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("2")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("2")).
				Padding(0, 1)

	buttonStyle        = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	focusedButtonStyle = buttonStyle.
				BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}).
				Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
)

// CursorMarker is the prefix shown on the focused row.
const CursorMarker = "▸ "

// EmailHelperText is shown under the email field while it fails validation.
const EmailHelperText = "Sorry, this email address is not valid, Please try again."
