package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/clustertop/internal/config"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// GlobalFlags holds the persistent flags shared by every command.
type GlobalFlags struct {
	ConfigPath  string
	Grid        string
	Interval    time.Duration
	RefreshRate float64
	Source      string
	NoColor     bool
	LogFile     string
	MetricsAddr string
	Headless    bool
}

var globals GlobalFlags

// registerGlobalFlags adds the persistent flags to cmd.
func registerGlobalFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&globals.ConfigPath, "config", "", "config file (default: search for "+config.ConfigFileName+")")
	f.StringVar(&globals.Grid, "grid", "", "grid preset: "+monitor.PresetNames())
	f.DurationVar(&globals.Interval, "interval", 0, "time between data updates (e.g., 1s, 500ms)")
	f.Float64Var(&globals.RefreshRate, "refresh-rate", 0, "repaints per second, 0 derives twice the update rate")
	f.StringVar(&globals.Source, "source", "", "cluster state source: fake or kube")
	f.BoolVar(&globals.NoColor, "no-color", false, "disable colored output")
	f.StringVar(&globals.LogFile, "log-file", "", "log file used while the dashboard owns the terminal")
	f.StringVar(&globals.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g., :9090)")
	f.BoolVar(&globals.Headless, "headless", false, "print frames as plain text instead of the full-screen dashboard")
}

// applyFlags overrides cfg with every flag the user set explicitly.
func applyFlags(cmd *cobra.Command, flags GlobalFlags, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	if changed("grid") {
		cfg.Grid = flags.Grid
	}
	if changed("interval") {
		cfg.UpdateInterval = flags.Interval
	}
	if changed("refresh-rate") {
		cfg.RefreshRate = flags.RefreshRate
	}
	if changed("source") {
		cfg.Source.Kind = flags.Source
	}
	if changed("no-color") {
		cfg.NoColor = flags.NoColor
	}
	if changed("log-file") {
		cfg.Log.File = flags.LogFile
	}
	if changed("metrics-addr") {
		cfg.Metrics.Addr = flags.MetricsAddr
	}
}

// loadConfig resolves the config file, applies flag overrides and validates
// the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _, err := config.Resolve(globals.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, globals, cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
