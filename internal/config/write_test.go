package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/clustertop/internal/errors"
)

func TestMarshal_HumanDurations(t *testing.T) {
	data, err := Marshal(DefaultConfig())
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# clustertop configuration"))
	assert.Contains(t, out, "update_interval: 1s\n")
	assert.Contains(t, out, "shutdown_timeout: 2s\n")
	assert.Contains(t, out, "timeout: 5s\n")
	assert.NotContains(t, out, "1000000000")
}

func TestWrite_LoadsBackUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := DefaultConfig()
	cfg.Grid = "4x3"
	cfg.UpdateInterval = 250 * time.Millisecond
	cfg.RefreshRate = 8
	cfg.TrendCapacity = 40
	cfg.Source.Kind = SourceKube
	cfg.Source.Context = "prod"
	cfg.Metrics.Addr = "127.0.0.1:9102"
	cfg.Log.File = filepath.Join(t.TempDir(), "ct.log")

	require.NoError(t, Write(cfg, path, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("grid: 3x3\n"), 0644))

	err := Write(DefaultConfig(), path, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "grid: 3x3\n", string(data))

	require.NoError(t, Write(DefaultConfig(), path, true))
}
