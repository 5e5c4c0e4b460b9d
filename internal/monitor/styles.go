package monitor

import "github.com/rileyhilliard/clustertop/internal/cluster"

// Style is a semantic style tag attached to render-model fragments.
// Renderers map each tag to concrete terminal attributes; StyleNeutral is
// the fallback for anything they do not recognise.
type Style int

const (
	StyleNeutral Style = iota
	StyleTitle
	StyleLabel
	StyleValue
	StyleMuted
	StyleAccent
	StyleHealthy
	StyleWarning
	StyleCritical
)

var styleNames = map[Style]string{
	StyleNeutral:  "neutral",
	StyleTitle:    "title",
	StyleLabel:    "label",
	StyleValue:    "value",
	StyleMuted:    "muted",
	StyleAccent:   "accent",
	StyleHealthy:  "healthy",
	StyleWarning:  "warning",
	StyleCritical: "critical",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "neutral"
}

// Thresholds for colouring percentage metrics. They line up with the alert
// thresholds so a bar turns amber at the point a WARN alert fires.
const (
	WarningThreshold  = cluster.CPUWarnPercent
	CriticalThreshold = cluster.CPUCritPercent
)

// HealthStyle maps a health tier to its badge style.
func HealthStyle(h cluster.Health) Style {
	switch h {
	case cluster.HealthHealthy:
		return StyleHealthy
	case cluster.HealthDegraded:
		return StyleWarning
	case cluster.HealthCritical:
		return StyleCritical
	default:
		return StyleNeutral
	}
}

// StatusStyle maps a node readiness status to a style.
func StatusStyle(s cluster.Status) Style {
	switch s {
	case cluster.StatusReady:
		return StyleHealthy
	case cluster.StatusNotReady:
		return StyleCritical
	default:
		return StyleNeutral
	}
}

// SeverityStyle maps an alert severity to a style.
func SeverityStyle(s cluster.Severity) Style {
	switch s {
	case cluster.SeverityCrit:
		return StyleCritical
	case cluster.SeverityWarn:
		return StyleWarning
	default:
		return StyleNeutral
	}
}

// MetricStyle returns the style for a percentage metric.
func MetricStyle(percent int) Style {
	return MetricStyleWithThresholds(percent, WarningThreshold, CriticalThreshold)
}

// MetricStyleWithThresholds is MetricStyle with caller-provided thresholds.
func MetricStyleWithThresholds(percent, warning, critical int) Style {
	switch {
	case percent >= critical:
		return StyleCritical
	case percent >= warning:
		return StyleWarning
	default:
		return StyleHealthy
	}
}
