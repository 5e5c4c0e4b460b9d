// Package cluster turns raw per-node telemetry into a cluster summary,
// an ordered alert list and a health tier.
//
// Aggregate is pure: the same samples in the same order always produce the
// same Summary and alerts. Averages use integer truncation (sum / count) and
// extrema resolve ties in favour of the first node seen.
package cluster

import (
	"math"

	"github.com/rileyhilliard/clustertop/internal/errors"
)

// Aggregate computes the summary and alerts for one tick.
// It returns an INVALID_INPUT error when samples is empty.
func Aggregate(samples []NodeSample) (Summary, []Alert, error) {
	if len(samples) == 0 {
		return Summary{}, nil, errors.NewInvalidInput("No node samples to aggregate")
	}

	var (
		s         Summary
		cpuSum    int
		memSum    int
		usedCores float64
		usedMem   float64
	)
	maxCPU, maxMem := samples[0], samples[0]

	s.NotReadyNames = []string{}

	for _, n := range samples {
		s.TotalNodes++
		if n.Ready() {
			s.ReadyNodes++
		} else {
			s.NotReadyNames = append(s.NotReadyNames, n.Name)
		}

		cpuSum += n.CPU
		memSum += n.Memory
		s.TotalPods += n.Pods

		// Strict comparison keeps the first node on ties.
		if n.CPU > maxCPU.CPU {
			maxCPU = n
		}
		if n.Memory > maxMem.Memory {
			maxMem = n
		}

		s.TotalCores += n.CPUCores
		s.TotalMemGB += n.MemGB
		s.PodsCapacity += n.PodsCapacity
		usedCores += float64(n.CPU) / 100 * float64(n.CPUCores)
		usedMem += float64(n.Memory) / 100 * float64(n.MemGB)
	}

	s.AvgCPU = cpuSum / s.TotalNodes
	s.AvgMemory = memSum / s.TotalNodes

	s.MaxCPU, s.MaxCPUNode = maxCPU.CPU, maxCPU.Name
	s.MaxMemory, s.MaxMemoryNode = maxMem.Memory, maxMem.Name

	s.UsedCores = roundTenths(usedCores)
	s.UsedMemGB = roundTenths(usedMem)

	alerts := DeriveAlerts(samples)
	s.AlertsTotal = len(alerts)
	s.AlertsWarn, s.AlertsCrit = CountBySeverity(alerts)
	s.Health = HealthOf(alerts)

	return s, alerts, nil
}

// roundTenths rounds to one decimal place.
func roundTenths(v float64) float64 {
	return math.Round(v*10) / 10
}
