package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	accentColor  = lipgloss.Color("205")
	successColor = lipgloss.Color("42")
	failureColor = lipgloss.Color("196")
	branchColor  = lipgloss.Color("39")
	dimColor     = lipgloss.Color("240")
)

// ConfigureColors disables styling when NO_COLOR is set or output is not a terminal
func ConfigureColors(terminal bool) {
	if os.Getenv("NO_COLOR") != "" || !terminal {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorBranch renders a branch name
func ColorBranch(text string) string {
	return lipgloss.NewStyle().Foreground(branchColor).Bold(true).Render(text)
}

// ColorURL renders a link
func ColorURL(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(text)
}
