package monitor

import (
	"testing"
	"time"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCadence(t *testing.T) {
	tests := []struct {
		name        string
		update      time.Duration
		refreshHz   float64
		wantUpdate  time.Duration
		wantRefresh time.Duration
		wantFPS     int
	}{
		{"defaults", 0, 0, time.Second, 500 * time.Millisecond, 2},
		{"derived from interval", 2 * time.Second, 0, 2 * time.Second, time.Second, 1},
		{"explicit rate", time.Second, 4, time.Second, 250 * time.Millisecond, 4},
		{"equal rates", 500 * time.Millisecond, 2, 500 * time.Millisecond, 500 * time.Millisecond, 2},
		{"capped", 100 * time.Millisecond, 1000, 100 * time.Millisecond, time.Second / 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCadence(tt.update, tt.refreshHz)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdate, c.Update)
			assert.Equal(t, tt.wantRefresh, c.Refresh)
			assert.Equal(t, tt.wantFPS, c.FPS())
			assert.GreaterOrEqual(t, c.Update, c.Refresh)
		})
	}
}

func TestNewCadence_Errors(t *testing.T) {
	_, err := NewCadence(10*time.Millisecond, 0)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	_, err = NewCadence(time.Second, 0.5)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "slower than the update rate")

	_, err = NewCadence(time.Second, -1)
	require.Error(t, err)
}

func TestCadence_RepaintsPerUpdate(t *testing.T) {
	c, err := NewCadence(time.Second, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, c.RepaintsPerUpdate())

	assert.Equal(t, 1, Cadence{}.FPS())
	assert.Equal(t, 1, Cadence{}.RepaintsPerUpdate())
}
