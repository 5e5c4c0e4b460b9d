package monitor

import (
	"testing"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/stretchr/testify/assert"
)

func TestHealthStyle(t *testing.T) {
	tests := []struct {
		health   cluster.Health
		expected Style
	}{
		{cluster.HealthHealthy, StyleHealthy},
		{cluster.HealthDegraded, StyleWarning},
		{cluster.HealthCritical, StyleCritical},
		{cluster.Health(99), StyleNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.health.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, HealthStyle(tt.health))
		})
	}
}

func TestStatusStyle(t *testing.T) {
	assert.Equal(t, StyleHealthy, StatusStyle(cluster.StatusReady))
	assert.Equal(t, StyleCritical, StatusStyle(cluster.StatusNotReady))
	assert.Equal(t, StyleNeutral, StatusStyle("Unknown"))
}

func TestSeverityStyle(t *testing.T) {
	assert.Equal(t, StyleCritical, SeverityStyle(cluster.SeverityCrit))
	assert.Equal(t, StyleWarning, SeverityStyle(cluster.SeverityWarn))
	assert.Equal(t, StyleNeutral, SeverityStyle("INFO"))
}

func TestMetricStyle(t *testing.T) {
	tests := []struct {
		percent  int
		expected Style
	}{
		{0, StyleHealthy},
		{84, StyleHealthy},
		{85, StyleWarning},
		{94, StyleWarning},
		{95, StyleCritical},
		{100, StyleCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, MetricStyle(tt.percent), "percent %d", tt.percent)
	}
}

func TestMetricStyleWithThresholds(t *testing.T) {
	assert.Equal(t, StyleHealthy, MetricStyleWithThresholds(49, 50, 80))
	assert.Equal(t, StyleWarning, MetricStyleWithThresholds(50, 50, 80))
	assert.Equal(t, StyleCritical, MetricStyleWithThresholds(80, 50, 80))
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "critical", StyleCritical.String())
	assert.Equal(t, "neutral", Style(-1).String())
}
