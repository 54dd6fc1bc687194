package main

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	modifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	socdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	toastStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	toastErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

// pad renders s left-aligned in a cell of the given width.
func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
