package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// Layout constants
const (
	barPanelHeight = 3  // header and footer: one row plus border
	minSideWidth   = 32 // summary/alerts column
	maxSideWidth   = 48
	minCellWidth   = 24
	minCellHeight  = 7 // title, four rows, border
	minInnerWidth  = 8
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.frame == nil {
		return loadingStyle.Render("Waiting for cluster data...")
	}
	return m.renderFrame(*m.frame)
}

// renderFrame lays out header, summary/alerts column, node grid and footer.
func (m Model) renderFrame(f monitor.Frame) string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	sections := []string{m.renderPanel(f.Header, width, barPanelHeight)}
	if m.stale != nil {
		sections = append(sections, staleBannerStyle.Render("⚠ stale: "+truncateWithEllipsis(errors.Summary(m.stale), width-12)))
	}

	bodyHeight := m.height - 2*barPanelHeight - (len(sections) - 1)
	sideWidth := clamp(width/3, minSideWidth, maxSideWidth)

	summary := m.renderPanel(f.Summary, sideWidth, 0)
	alertsHeight := bodyHeight - lipgloss.Height(summary)
	if alertsHeight < 4 {
		alertsHeight = 0
	}
	side := lipgloss.JoinVertical(lipgloss.Left, summary, m.renderPanel(f.Alerts, sideWidth, alertsHeight))

	body := lipgloss.JoinHorizontal(lipgloss.Top, side, m.renderGrid(f, width-sideWidth, bodyHeight))

	sections = append(sections, body, m.renderPanel(f.Footer, width, barPanelHeight))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderGrid draws node slots row by row using the frame's preset.
func (m Model) renderGrid(f monitor.Frame, width, height int) string {
	cols, rows := f.Preset.Cols, f.Preset.Rows
	if cols < 1 || rows < 1 {
		return ""
	}

	cellWidth := width / cols
	if cellWidth < minCellWidth {
		cellWidth = minCellWidth
	}
	cellHeight := height / rows
	if cellHeight < minCellHeight {
		cellHeight = minCellHeight
	}

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		slots := f.Row(r)
		cells := make([]string, len(slots))
		for i, s := range slots {
			cells[i] = m.renderPanel(s.Panel, cellWidth, cellHeight)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderPanel draws one bordered panel at the given outer size.
// A height of 0 lets the content decide.
func (m Model) renderPanel(p monitor.Panel, width, height int) string {
	inner := width - 4 // border + padding
	if inner < minInnerWidth {
		inner = minInnerWidth
	}

	var lines []string
	if len(p.Title) > 0 {
		lines = append(lines, truncate(renderFragments(p.Title), inner))
	}

	if p.Kind == monitor.KindEmpty {
		var body []string
		for _, r := range p.Rows {
			body = append(body, renderFragments(r.Left))
		}
		bodyHeight := height - 2 - len(lines)
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		lines = append(lines, lipgloss.Place(inner, bodyHeight, lipgloss.Center, lipgloss.Center, strings.Join(body, "\n")))
	} else {
		for _, r := range p.Rows {
			lines = append(lines, m.renderRow(r, inner))
		}
	}

	style := panelStyle(p.Border).Width(inner + 2)
	if height > 2 {
		style = style.Height(height - 2).MaxHeight(height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderRow draws left fragments, an optional bar or sparkline, and right
// fragments flush with the panel edge.
func (m Model) renderRow(r monitor.Row, width int) string {
	left := renderFragments(r.Left)
	right := renderFragments(r.Right)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)

	var middle string
	switch {
	case r.Bar != nil:
		if barWidth := gap - 2; barWidth > 0 {
			middle = " " + m.renderBar(*r.Bar, barWidth) + " "
		}
	case r.Spark != nil:
		glyphs := monitor.SparklineGlyphs(r.Spark.Levels)
		if lipgloss.Width(glyphs) < gap {
			middle = styleFor(r.Spark.Style).Render(glyphs)
		}
	}

	pad := gap - lipgloss.Width(middle)
	if pad < 0 {
		pad = 0
	}
	if pad == 0 && right != "" && middle == "" {
		pad = 1
	}
	return left + middle + strings.Repeat(" ", pad) + right
}

func (m Model) renderBar(b monitor.Bar, width int) string {
	bar, ok := m.bars[b.Style]
	if !ok {
		bar = m.bars[monitor.StyleNeutral]
	}
	bar.Width = width
	bar.EmptyColor = ColorEmptyBar
	return bar.ViewAs(b.Ratio)
}

// renderFragments draws a styled fragment list.
func renderFragments(frags []monitor.Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(styleFor(f.Style).Render(f.Text))
	}
	return sb.String()
}

// truncate cuts a rendered string to maxWidth cells.
func truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(maxWidth).Render(s)
}

// truncateWithEllipsis truncates plain text to maxLen runes, adding ellipsis if needed.
func truncateWithEllipsis(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 3 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
