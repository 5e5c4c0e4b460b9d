// Package headless writes dashboard frames as plain text blocks, for pipes,
// CI logs and terminals that cannot host the full-screen dashboard.
package headless

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/logger"
	"github.com/rileyhilliard/clustertop/internal/monitor"
	"github.com/rileyhilliard/clustertop/internal/util"
)

// Renderer implements monitor.Renderer by writing one text block per frame.
type Renderer struct {
	mu  sync.Mutex
	w   io.Writer
	log logger.Logger
	err error
}

// New creates a renderer writing to w. A nil log discards write failures.
func New(w io.Writer, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.Noop()
	}
	return &Renderer{w: w, log: log}
}

// Render writes the frame.
func (r *Renderer) Render(f monitor.Frame) {
	r.write(FormatFrame(f))
}

// Stale writes a one-line marker. The previous block remains the latest
// complete picture.
func (r *Renderer) Stale(err error) {
	r.write("stale: " + errors.Summary(err) + "\n\n")
}

// Err returns the first write error, if any.
func (r *Renderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Renderer) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, s); err != nil && r.err == nil {
		r.err = err
		r.log.Warn("Headless output failed", "error", err)
	}
}

// FormatFrame renders a frame as text: header, summary, alerts, occupied
// node slots, then footer. Empty slots are folded into a single count.
func FormatFrame(f monitor.Frame) string {
	var sb strings.Builder

	writePanel(&sb, f.Header, "")
	writePanel(&sb, f.Summary, "  ")
	writePanel(&sb, f.Alerts, "  ")

	empty := 0
	for _, s := range f.Nodes {
		if s.Empty() {
			empty++
			continue
		}
		writePanel(&sb, s.Panel, "  ")
	}
	if empty > 0 {
		fmt.Fprintf(&sb, "(%d empty %s)\n", empty, util.Pluralize(empty, "slot", "slots"))
	}

	writePanel(&sb, f.Footer, "")
	sb.WriteString("\n")
	return sb.String()
}

func writePanel(sb *strings.Builder, p monitor.Panel, indent string) {
	if title := p.TitleText(); title != "" {
		sb.WriteString(title)
		sb.WriteString("\n")
	}
	for _, row := range p.Rows {
		sb.WriteString(indent)
		sb.WriteString(FormatRow(row))
		sb.WriteString("\n")
	}
}

// FormatRow flattens a row: left text, sparkline glyphs if any, then the
// right text separated by two spaces. Bars are dropped since the right side
// already carries the percentage.
func FormatRow(row monitor.Row) string {
	var sb strings.Builder
	sb.WriteString(monitor.Text(row.Left))
	if row.Spark != nil {
		sb.WriteString(monitor.SparklineGlyphs(row.Spark.Levels))
	}
	if right := monitor.Text(row.Right); right != "" {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimLeft(right, " "))
	}
	return strings.TrimRight(sb.String(), " ")
}

var _ monitor.Renderer = (*Renderer)(nil)
