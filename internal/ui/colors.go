package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
)

// Text colors for content hierarchy
const (
	ColorPrimary lipgloss.Color = "7" // White/default
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// DisableColors switches lipgloss to plain output for the whole process.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Success renders a line prefixed with a green check.
func Success(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess) + " " + msg
}

// Failure renders a line prefixed with a red cross.
func Failure(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail) + " " + msg
}

// Muted renders secondary text.
func Muted(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(msg)
}
