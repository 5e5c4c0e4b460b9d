// Package metrics exports render loop counters and gauges in the Prometheus
// text format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

const namespace = "clustertop"

// Recorder implements monitor.Recorder on a private registry so tests and
// embedders never collide with the global one.
type Recorder struct {
	registry *prometheus.Registry

	ticks      prometheus.Counter
	skipped    *prometheus.CounterVec
	mismatches prometheus.Counter
	duration   prometheus.Histogram

	health      prometheus.Gauge
	nodes       prometheus.Gauge
	readyNodes  prometheus.Gauge
	alerts      *prometheus.GaugeVec
	avgCPU      prometheus.Gauge
	avgMemory   prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Ticks that produced a frame.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_failures_total",
			Help:      "Ticks skipped, by reason.",
		}, []string{"reason"}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_mismatches_total",
			Help:      "Ticks where the node count exceeded the grid capacity.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent fetching, aggregating and rendering a tick.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "health",
			Help:      "Cluster health tier of the last tick: 0 healthy, 1 degraded, 2 critical.",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Nodes in the last snapshot.",
		}),
		readyNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready_nodes",
			Help:      "Ready nodes in the last snapshot.",
		}),
		alerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alerts",
			Help:      "Active alerts in the last snapshot, by severity.",
		}, []string{"severity"}),
		avgCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_average_percent",
			Help:      "Truncated mean CPU utilisation across nodes.",
		}),
		avgMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_average_percent",
			Help:      "Truncated mean memory utilisation across nodes.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last tick that produced a frame.",
		}),
	}

	r.registry.MustRegister(
		r.ticks, r.skipped, r.mismatches, r.duration,
		r.health, r.nodes, r.readyNodes, r.alerts,
		r.avgCPU, r.avgMemory, r.lastSuccess,
	)
	return r
}

// Registry exposes the private registry for serving and tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// TickCompleted records a successful tick.
func (r *Recorder) TickCompleted(s cluster.Summary, took time.Duration) {
	r.ticks.Inc()
	r.duration.Observe(took.Seconds())
	r.health.Set(float64(s.Health))
	r.nodes.Set(float64(s.TotalNodes))
	r.readyNodes.Set(float64(s.ReadyNodes))
	r.alerts.WithLabelValues(string(cluster.SeverityCrit)).Set(float64(s.AlertsCrit))
	r.alerts.WithLabelValues(string(cluster.SeverityWarn)).Set(float64(s.AlertsWarn))
	r.avgCPU.Set(float64(s.AvgCPU))
	r.avgMemory.Set(float64(s.AvgMemory))
	r.lastSuccess.SetToCurrentTime()
}

// TickSkipped records a tick that kept the previous frame.
func (r *Recorder) TickSkipped(reason string) {
	r.skipped.WithLabelValues(reason).Inc()
}

// CapacityMismatch records a truncated grid placement.
func (r *Recorder) CapacityMismatch(nodes, capacity int) {
	r.mismatches.Inc()
}

var _ monitor.Recorder = (*Recorder)(nil)
