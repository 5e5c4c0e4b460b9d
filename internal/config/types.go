package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Source kinds.
const (
	SourceFake = "fake"
	SourceKube = "kube"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config represents the complete .clustertop.yaml configuration file.
// Everything is fixed at process start; there is no hot reload.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Grid is the preset name, e.g. "3x3".
	Grid string `yaml:"grid" mapstructure:"grid"`

	// UpdateInterval is the time between data ticks.
	UpdateInterval time.Duration `yaml:"update_interval" mapstructure:"update_interval"`

	// RefreshRate is the repaint rate in Hz. Zero derives twice the update rate.
	RefreshRate float64 `yaml:"refresh_rate" mapstructure:"refresh_rate"`

	// TrendCapacity is how many ticks of CPU/memory history sparklines keep.
	TrendCapacity int `yaml:"trend_capacity" mapstructure:"trend_capacity"`

	// ShutdownTimeout bounds cleanup after an interrupt.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// NoColor disables ANSI colors.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`

	Alerts  AlertsConfig  `yaml:"alerts" mapstructure:"alerts"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// AlertsConfig controls the alerts panel.
type AlertsConfig struct {
	// MaxRows caps listed alerts; the rest collapse into "+N more".
	// Zero or less lists every alert.
	MaxRows int `yaml:"max_rows" mapstructure:"max_rows"`
}

// SourceConfig selects and configures the telemetry source.
type SourceConfig struct {
	// Kind is "fake" or "kube".
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Fake generator settings.
	Seed    int64 `yaml:"seed" mapstructure:"seed"`
	Masters int   `yaml:"masters" mapstructure:"masters"`
	Workers int   `yaml:"workers" mapstructure:"workers"`

	// Kubernetes settings.
	Kubeconfig string `yaml:"kubeconfig" mapstructure:"kubeconfig"`
	Context    string `yaml:"context" mapstructure:"context"`

	// Timeout bounds a single snapshot fetch.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// File receives logs while the dashboard owns the terminal.
	File string `yaml:"file" mapstructure:"file"`

	// Level is debug, info, warn or error.
	Level string `yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `yaml:"format" mapstructure:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr to serve /metrics on, e.g. ":9090". Empty disables it.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultLogFile is where logs go when the dashboard owns the terminal.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "clustertop.log")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:         CurrentConfigVersion,
		Grid:            monitor.DefaultPresetName,
		UpdateInterval:  monitor.DefaultUpdateInterval,
		RefreshRate:     0,
		TrendCapacity:   monitor.DefaultTrendCapacity,
		ShutdownTimeout: monitor.DefaultShutdownTimeout,
		Alerts: AlertsConfig{
			MaxRows: 8,
		},
		Source: SourceConfig{
			Kind:    SourceFake,
			Masters: 1,
			Workers: 3,
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			File:   DefaultLogFile(),
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}
