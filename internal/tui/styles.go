package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive color palette — works on both dark and light terminals.
// Format: AdaptiveColor{Light, Dark}
var (
	colorAccent = lipgloss.AdaptiveColor{Light: "63", Dark: "63"}   // muted indigo
	colorSubtle = lipgloss.AdaptiveColor{Light: "243", Dark: "241"} // gray
	colorText   = lipgloss.AdaptiveColor{Light: "235", Dark: "252"} // near-white on dark
	colorGreen  = lipgloss.AdaptiveColor{Light: "34", Dark: "78"}   // tool results
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "203"} // error
)

// Title bar
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	titleDimStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)
)

// Transcript
var (
	youLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	entryTextStyle = lipgloss.NewStyle().
			Foreground(colorText)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// Input and help bars
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	helpSepStyle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)
)
