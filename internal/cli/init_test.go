package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/clustertop/internal/config"
	"github.com/rileyhilliard/clustertop/internal/errors"
)

func TestInit_NonInteractiveDefaults(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := Init(InitOptions{Dir: dir, NonInteractive: true, Out: &out})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "2x2", cfg.Grid)
	assert.Equal(t, time.Second, cfg.UpdateInterval)
	assert.Equal(t, config.SourceFake, cfg.Source.Kind)

	assert.Contains(t, out.String(), "Created "+filepath.Join(dir, config.ConfigFileName))
	assert.Contains(t, out.String(), "Next steps:")
	assert.NotContains(t, out.String(), "metrics-server")
}

func TestInit_NonInteractiveWithValues(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	err := Init(InitOptions{
		Dir:            dir,
		Grid:           "3x3",
		Interval:       "2s",
		Source:         config.SourceKube,
		NonInteractive: true,
		Out:            &out,
	})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "3x3", cfg.Grid)
	assert.Equal(t, 2*time.Second, cfg.UpdateInterval)
	assert.Equal(t, config.SourceKube, cfg.Source.Kind)
	assert.Contains(t, out.String(), "metrics-server")
}

func TestInit_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("grid: 4x4\n"), 0644))

	t.Run("refuses without force", func(t *testing.T) {
		err := Init(InitOptions{Dir: dir, NonInteractive: true, Out: &bytes.Buffer{}})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
		assert.Contains(t, err.Error(), "--force")

		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "grid: 4x4\n", string(data))
	})

	t.Run("overwrites with force", func(t *testing.T) {
		err := Init(InitOptions{Dir: dir, Grid: "3x2", NonInteractive: true, Overwrite: true, Out: &bytes.Buffer{}})
		require.NoError(t, err)

		cfg, loadErr := config.Load(path)
		require.NoError(t, loadErr)
		assert.Equal(t, "3x2", cfg.Grid)
	})
}

func TestInit_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		opts InitOptions
	}{
		{name: "unknown preset", opts: InitOptions{Grid: "9x9"}},
		{name: "bad interval", opts: InitOptions{Interval: "soon"}},
		{name: "unknown source", opts: InitOptions{Source: "docker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.opts.Dir = dir
			tt.opts.NonInteractive = true
			tt.opts.Out = &bytes.Buffer{}

			require.Error(t, Init(tt.opts))
			assert.NoFileExists(t, filepath.Join(dir, config.ConfigFileName))
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "1s", want: time.Second},
		{input: " 500ms ", want: 500 * time.Millisecond},
		{input: "100ms", want: 100 * time.Millisecond},
		{input: "50ms", wantErr: true},
		{input: "fast", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseInterval(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
