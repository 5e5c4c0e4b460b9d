package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/clustertop/internal/errors"
)

const fileHeader = `# clustertop configuration
# Run 'clustertop' in this directory to start the dashboard.
# Every key can be overridden with CLUSTERTOP_<KEY> (dots become underscores).

`

// fileConfig mirrors Config with durations as strings, so the written
// file reads "1s" rather than nanoseconds.
type fileConfig struct {
	Version         int           `yaml:"version"`
	Grid            string        `yaml:"grid"`
	UpdateInterval  string        `yaml:"update_interval"`
	RefreshRate     float64       `yaml:"refresh_rate"`
	TrendCapacity   int           `yaml:"trend_capacity"`
	ShutdownTimeout string        `yaml:"shutdown_timeout"`
	NoColor         bool          `yaml:"no_color,omitempty"`
	Alerts          AlertsConfig  `yaml:"alerts"`
	Source          fileSource    `yaml:"source"`
	Log             LogConfig     `yaml:"log"`
	Metrics         MetricsConfig `yaml:"metrics,omitempty"`
}

type fileSource struct {
	Kind       string `yaml:"kind"`
	Seed       int64  `yaml:"seed,omitempty"`
	Masters    int    `yaml:"masters,omitempty"`
	Workers    int    `yaml:"workers,omitempty"`
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
	Context    string `yaml:"context,omitempty"`
	Timeout    string `yaml:"timeout"`
}

// Marshal renders cfg as commented YAML that Load reads back unchanged.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:         cfg.Version,
		Grid:            cfg.Grid,
		UpdateInterval:  cfg.UpdateInterval.String(),
		RefreshRate:     cfg.RefreshRate,
		TrendCapacity:   cfg.TrendCapacity,
		ShutdownTimeout: cfg.ShutdownTimeout.String(),
		NoColor:         cfg.NoColor,
		Alerts:          cfg.Alerts,
		Source: fileSource{
			Kind:       cfg.Source.Kind,
			Seed:       cfg.Source.Seed,
			Masters:    cfg.Source.Masters,
			Workers:    cfg.Source.Workers,
			Kubeconfig: cfg.Source.Kubeconfig,
			Context:    cfg.Source.Context,
			Timeout:    cfg.Source.Timeout.String(),
		},
		Log:     cfg.Log,
		Metrics: cfg.Metrics,
	}

	data, err := yaml.Marshal(fc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	return append([]byte(fileHeader), data...), nil
}

// Write saves cfg to path. An existing file is only replaced when overwrite is set.
func Write(cfg *Config, path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}
