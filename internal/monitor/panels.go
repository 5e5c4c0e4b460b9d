package monitor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/util"
)

// PanelKind identifies what a panel displays.
type PanelKind int

const (
	KindEmpty PanelKind = iota
	KindHeader
	KindSummary
	KindAlerts
	KindFooter
	KindNode
)

// Fragment is a run of text carrying one style.
type Fragment struct {
	Text  string
	Style Style
}

// Bar is a horizontal fill gauge. Ratio is in [0,1].
type Bar struct {
	Label   string
	Ratio   float64
	Percent int
	Style   Style
}

// Spark is a glyph-level sequence, each level in 0..7.
type Spark struct {
	Label  string
	Levels []int
	Style  Style
}

// Row is one line of panel content. Renderers draw Left, then Bar or Spark
// when set, then Right aligned to the panel edge.
type Row struct {
	Left  []Fragment
	Bar   *Bar
	Spark *Spark
	Right []Fragment
}

// Panel is a declarative description of one slot's content. It holds no
// terminal state, so any renderer can draw it.
type Panel struct {
	Kind   PanelKind
	Title  []Fragment
	Border Style
	Rows   []Row
}

// Text flattens a fragment list to plain text.
func Text(frags []Fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// TitleText returns the panel title without styling.
func (p Panel) TitleText() string {
	return Text(p.Title)
}

func frag(text string, style Style) Fragment {
	return Fragment{Text: text, Style: style}
}

func textRow(frags ...Fragment) Row {
	return Row{Left: frags}
}

// HeaderPanel shows the application title and wall-clock time.
func HeaderPanel(now time.Time) Panel {
	return Panel{
		Kind:   KindHeader,
		Border: StyleAccent,
		Rows: []Row{{
			Left:  []Fragment{frag("clustertop", StyleTitle)},
			Right: []Fragment{frag("Time: "+now.Format("15:04:05"), StyleAccent)},
		}},
	}
}

// FooterPanel shows the exit hint and dashboard uptime.
func FooterPanel(uptime time.Duration) Panel {
	return Panel{
		Kind:   KindFooter,
		Border: StyleMuted,
		Rows: []Row{{
			Left:  []Fragment{frag("Press Ctrl+C to exit", StyleMuted)},
			Right: []Fragment{frag("Uptime: "+FormatUptime(uptime), StyleMuted)},
		}},
	}
}

// FormatUptime renders a duration as zero-padded HH:MM:SS. Hours are not
// wrapped at 24.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// HealthBadge renders the health tier as a styled fragment.
func HealthBadge(h cluster.Health) Fragment {
	return frag(" "+h.String()+" ", HealthStyle(h))
}

// NotReadySummary describes which nodes are not ready.
func NotReadySummary(names []string) Fragment {
	if len(names) == 0 {
		return frag("All nodes ready", StyleHealthy)
	}
	return frag("NotReady: "+util.JoinOrNone(names), StyleCritical)
}

// SummaryPanel renders the cluster summary with trend sparklines.
func SummaryPanel(s cluster.Summary) Panel {
	rows := []Row{
		textRow(frag("Health ", StyleLabel), HealthBadge(s.Health)),
		textRow(
			frag(fmt.Sprintf("Nodes: %d", s.TotalNodes), StyleAccent),
			frag(fmt.Sprintf("  Ready: %d", s.ReadyNodes), StyleHealthy),
		),
		textRow(NotReadySummary(s.NotReadyNames)),
		{
			Left:  []Fragment{frag(fmt.Sprintf("CPU Avg: %3d%% ", s.AvgCPU), MetricStyle(s.AvgCPU))},
			Spark: &Spark{Label: "cpu", Levels: SparklineLevels(s.CPUTrend), Style: MetricStyle(s.AvgCPU)},
			Right: []Fragment{frag(fmt.Sprintf("max %d%% %s", s.MaxCPU, s.MaxCPUNode), StyleMuted)},
		},
		{
			Left:  []Fragment{frag(fmt.Sprintf("Mem Avg: %3d%% ", s.AvgMemory), MetricStyle(s.AvgMemory))},
			Spark: &Spark{Label: "mem", Levels: SparklineLevels(s.MemTrend), Style: MetricStyle(s.AvgMemory)},
			Right: []Fragment{frag(fmt.Sprintf("max %d%% %s", s.MaxMemory, s.MaxMemoryNode), StyleMuted)},
		},
		textRow(
			frag(fmt.Sprintf("Cores: %.1f/%d", s.UsedCores, s.TotalCores), StyleValue),
			frag(fmt.Sprintf("  Mem: %.1f/%d GB", s.UsedMemGB, s.TotalMemGB), StyleValue),
		),
		textRow(frag(fmt.Sprintf("Pods: %d/%d", s.TotalPods, s.PodsCapacity), StyleValue)),
		textRow(alertCountFragment(s)),
	}

	return Panel{
		Kind:   KindSummary,
		Title:  []Fragment{frag("Cluster Summary", StyleTitle)},
		Border: HealthStyle(s.Health),
		Rows:   rows,
	}
}

func alertCountFragment(s cluster.Summary) Fragment {
	if s.AlertsTotal == 0 {
		return frag("Alerts: none", StyleHealthy)
	}
	style := StyleWarning
	if s.AlertsCrit > 0 {
		style = StyleCritical
	}
	return frag(fmt.Sprintf("Alerts: %d (%d crit, %d warn)", s.AlertsTotal, s.AlertsCrit, s.AlertsWarn), style)
}

// AwaitingSummaryPanel stands in for the summary before any data arrived.
func AwaitingSummaryPanel(cause error) Panel {
	rows := []Row{textRow(frag("Awaiting cluster data", StyleMuted))}
	if cause != nil {
		rows = append(rows, textRow(frag(errors.Summary(cause), StyleCritical)))
	}
	return Panel{
		Kind:   KindSummary,
		Title:  []Fragment{frag("Cluster Summary", StyleTitle)},
		Border: StyleMuted,
		Rows:   rows,
	}
}

// RankAlerts orders alerts CRIT before WARN, keeping input order within a
// severity. The input slice is not modified.
func RankAlerts(alerts []cluster.Alert) []cluster.Alert {
	ranked := make([]cluster.Alert, len(alerts))
	copy(ranked, alerts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return severityRank(ranked[i].Severity) < severityRank(ranked[j].Severity)
	})
	return ranked
}

func severityRank(s cluster.Severity) int {
	switch s {
	case cluster.SeverityCrit:
		return 0
	case cluster.SeverityWarn:
		return 1
	default:
		return 2
	}
}

// AlertsPanel lists ranked alerts, showing at most maxRows followed by a
// "+N more" line. A non-positive maxRows shows every alert.
func AlertsPanel(alerts []cluster.Alert, maxRows int) Panel {
	p := Panel{
		Kind:   KindAlerts,
		Title:  []Fragment{frag(fmt.Sprintf("Alerts (%d)", len(alerts)), StyleTitle)},
		Border: StyleHealthy,
	}

	if len(alerts) == 0 {
		p.Rows = []Row{textRow(frag("No active alerts", StyleHealthy))}
		return p
	}

	ranked := RankAlerts(alerts)
	p.Border = SeverityStyle(ranked[0].Severity)

	shown := ranked
	if maxRows > 0 && len(ranked) > maxRows {
		shown = ranked[:maxRows]
	}
	for _, a := range shown {
		p.Rows = append(p.Rows, textRow(
			frag(fmt.Sprintf("%-4s ", a.Severity), SeverityStyle(a.Severity)),
			frag(a.Node, StyleValue),
			frag(" "+a.Message, StyleLabel),
		))
	}
	if hidden := len(ranked) - len(shown); hidden > 0 {
		p.Rows = append(p.Rows, textRow(frag(fmt.Sprintf("+%d more", hidden), StyleMuted)))
	}
	return p
}

// NodePanel renders one node: title, CPU/MEM/DSK bars and an info row.
func NodePanel(n cluster.NodeSample) Panel {
	return Panel{
		Kind: KindNode,
		Title: []Fragment{
			frag(n.Name, StyleTitle),
			frag(" | ", StyleMuted),
			frag(string(n.Role), StyleAccent),
			frag(" | ", StyleMuted),
			frag(string(n.Status), StatusStyle(n.Status)),
		},
		Border: StatusStyle(n.Status),
		Rows: []Row{
			metricRow("CPU", n.CPU),
			metricRow("MEM", n.Memory),
			metricRow("DSK", n.Disk),
			{
				Left:  []Fragment{frag(fmt.Sprintf("Pods: %d", n.Pods), StyleWarning)},
				Right: []Fragment{frag(fmt.Sprintf("Lat: %dms", n.LatencyMS), StyleWarning)},
			},
		},
	}
}

func metricRow(label string, percent int) Row {
	p := clampPercent(percent)
	style := MetricStyle(p)
	return Row{
		Left:  []Fragment{frag(fmt.Sprintf("%-4s", label), StyleLabel)},
		Bar:   &Bar{Label: label, Ratio: float64(p) / 100, Percent: p, Style: style},
		Right: []Fragment{frag(fmt.Sprintf("%3d%%", p), style)},
	}
}

// EmptyPanel is the placeholder for an unused grid slot.
func EmptyPanel() Panel {
	return Panel{
		Kind:   KindEmpty,
		Title:  []Fragment{frag("Empty", StyleMuted)},
		Border: StyleMuted,
		Rows:   []Row{textRow(frag("—", StyleMuted))},
	}
}
