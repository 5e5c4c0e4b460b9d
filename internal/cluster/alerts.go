package cluster

import "fmt"

// Alert thresholds, inclusive lower bounds.
const (
	CPUWarnPercent    = 85
	CPUCritPercent    = 95
	MemoryWarnPercent = 85
	MemoryCritPercent = 95
	DiskWarnPercent   = 90
	LatencyWarnMS     = 15
)

const notReadyMessage = "Node NotReady"

// NodeAlerts evaluates every rule against a single node. All applicable
// rules fire, in rule order: readiness, CPU, memory, disk, latency.
func NodeAlerts(n NodeSample) []Alert {
	var alerts []Alert

	if n.Status != StatusReady {
		alerts = append(alerts, Alert{Node: n.Name, Severity: SeverityCrit, Message: notReadyMessage})
	}

	if sev, ok := tiered(n.CPU, CPUWarnPercent, CPUCritPercent); ok {
		alerts = append(alerts, Alert{Node: n.Name, Severity: sev, Message: fmt.Sprintf("High CPU (%d%%)", n.CPU)})
	}

	if sev, ok := tiered(n.Memory, MemoryWarnPercent, MemoryCritPercent); ok {
		alerts = append(alerts, Alert{Node: n.Name, Severity: sev, Message: fmt.Sprintf("High MEM (%d%%)", n.Memory)})
	}

	// Disk has no critical tier.
	if n.Disk >= DiskWarnPercent {
		alerts = append(alerts, Alert{Node: n.Name, Severity: SeverityWarn, Message: fmt.Sprintf("High Disk (%d%%)", n.Disk)})
	}

	if n.LatencyMS >= LatencyWarnMS {
		alerts = append(alerts, Alert{Node: n.Name, Severity: SeverityWarn, Message: fmt.Sprintf("High Latency (%dms)", n.LatencyMS)})
	}

	return alerts
}

// DeriveAlerts evaluates all nodes in input order.
func DeriveAlerts(nodes []NodeSample) []Alert {
	var alerts []Alert
	for _, n := range nodes {
		alerts = append(alerts, NodeAlerts(n)...)
	}
	return alerts
}

// HealthOf returns the tier implied by a set of alerts.
func HealthOf(alerts []Alert) Health {
	health := HealthHealthy
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCrit:
			return HealthCritical
		case SeverityWarn:
			health = HealthDegraded
		}
	}
	return health
}

// CountBySeverity returns the number of WARN and CRIT alerts.
func CountBySeverity(alerts []Alert) (warn, crit int) {
	for _, a := range alerts {
		switch a.Severity {
		case SeverityWarn:
			warn++
		case SeverityCrit:
			crit++
		}
	}
	return warn, crit
}

func tiered(value, warn, crit int) (Severity, bool) {
	switch {
	case value >= crit:
		return SeverityCrit, true
	case value >= warn:
		return SeverityWarn, true
	default:
		return "", false
	}
}
