package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// Trend capacity bounds.
const (
	MinTrendCapacity = 1
	MaxTrendCapacity = 600
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but clustertop only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade clustertop or lower the version field")
	}

	if _, err := monitor.LookupPreset(cfg.Grid); err != nil {
		return err
	}

	if err := validateCadence(cfg); err != nil {
		return err
	}

	if cfg.TrendCapacity < MinTrendCapacity || cfg.TrendCapacity > MaxTrendCapacity {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("trend_capacity %d is out of range", cfg.TrendCapacity),
			fmt.Sprintf("Use a value between %d and %d", MinTrendCapacity, MaxTrendCapacity))
	}

	if cfg.ShutdownTimeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("shutdown_timeout %s can't be negative", cfg.ShutdownTimeout),
			"Use a duration like 2s, or 0 for the default")
	}

	if err := validateSource(cfg.Source); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'source' section in your .clustertop.yaml.")
	}

	if err := validateLog(cfg.Log); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'log' section in your .clustertop.yaml.")
	}

	return nil
}

// validateCadence applies the loop's own rules plus the explicit refresh cap,
// which the loop would otherwise clamp silently.
func validateCadence(cfg *Config) error {
	if cfg.RefreshRate < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh_rate %g can't be negative", cfg.RefreshRate),
			"Use 0 to derive it from update_interval")
	}
	if cfg.RefreshRate > monitor.MaxRefreshHz {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh_rate %gHz is above the %dHz limit", cfg.RefreshRate, monitor.MaxRefreshHz),
			fmt.Sprintf("Use a rate of %d or less", monitor.MaxRefreshHz))
	}
	if cfg.UpdateInterval < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("update_interval %s can't be negative", cfg.UpdateInterval),
			"Use a duration like 1s or 500ms")
	}
	_, err := monitor.NewCadence(cfg.UpdateInterval, cfg.RefreshRate)
	return err
}

func validateSource(s SourceConfig) error {
	switch s.Kind {
	case SourceFake:
		if s.Masters < 0 || s.Workers < 0 {
			return fmt.Errorf("source.masters and source.workers can't be negative")
		}
	case SourceKube:
	default:
		return fmt.Errorf("unknown source kind '%s' (expected %s or %s)", s.Kind, SourceFake, SourceKube)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("source.timeout %s can't be negative", s.Timeout)
	}
	return nil
}

func validateLog(l LogConfig) error {
	if !validLogLevels[strings.ToLower(l.Level)] {
		return fmt.Errorf("unknown log level '%s' (expected debug, info, warn or error)", l.Level)
	}
	switch l.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format '%s' (expected %s or %s)", l.Format, LogFormatConsole, LogFormatJSON)
	}
	return nil
}
