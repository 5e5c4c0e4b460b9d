package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// Dashboard color palette - electric synthwave
const (
	ColorBorder = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple
	ColorGraph     = lipgloss.Color("#00FFFF") // Neon cyan
)

// ColorEmptyBar fills the unused part of a metric bar.
const ColorEmptyBar = "#1E1E2E"

var (
	staleBannerStyle = lipgloss.NewStyle().
				Foreground(ColorCritical).
				Bold(true).
				Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(1, 2)
)

// colorFor maps a semantic style to a palette color.
func colorFor(s monitor.Style) lipgloss.Color {
	switch s {
	case monitor.StyleTitle, monitor.StyleValue:
		return ColorTextPrimary
	case monitor.StyleLabel:
		return ColorTextSecondary
	case monitor.StyleMuted:
		return ColorTextMuted
	case monitor.StyleAccent:
		return ColorGraph
	case monitor.StyleHealthy:
		return ColorHealthy
	case monitor.StyleWarning:
		return ColorWarning
	case monitor.StyleCritical:
		return ColorCritical
	default:
		return ColorTextSecondary
	}
}

// styleFor returns the lipgloss style used to draw a fragment.
func styleFor(s monitor.Style) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorFor(s))
	switch s {
	case monitor.StyleTitle, monitor.StyleCritical:
		st = st.Bold(true)
	}
	return st
}

// borderColor picks the panel border color. Neutral panels get the glass border.
func borderColor(s monitor.Style) lipgloss.Color {
	switch s {
	case monitor.StyleNeutral, monitor.StyleMuted:
		return ColorBorder
	case monitor.StyleAccent:
		return ColorAccentDim
	default:
		return colorFor(s)
	}
}

// panelStyle is the bordered box around every slot.
func panelStyle(border monitor.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor(border)).
		Padding(0, 1)
}
