package monitor

import (
	"fmt"
	"math"
	"time"

	"github.com/rileyhilliard/clustertop/internal/errors"
)

// Cadence limits.
const (
	DefaultUpdateInterval = time.Second
	MinUpdateInterval     = 100 * time.Millisecond
	MaxRefreshHz          = 60
)

// Cadence holds the two loop rates: how often data is fetched and how
// often the screen repaints. Both come from one value so they cannot drift
// apart.
type Cadence struct {
	Update  time.Duration
	Refresh time.Duration
}

// NewCadence derives a cadence from the update interval and a refresh rate
// in Hz. A zero refresh rate repaints twice per update.
func NewCadence(update time.Duration, refreshHz float64) (Cadence, error) {
	if update == 0 {
		update = DefaultUpdateInterval
	}
	if update < MinUpdateInterval {
		return Cadence{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Update interval %s is too short", update),
			fmt.Sprintf("Use an interval of at least %s", MinUpdateInterval))
	}

	updateHz := 1 / update.Seconds()
	if refreshHz == 0 {
		refreshHz = 2 * updateHz
	}
	if refreshHz > MaxRefreshHz {
		refreshHz = MaxRefreshHz
	}
	if refreshHz < updateHz {
		return Cadence{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh rate %.2gHz is slower than the update rate %.2gHz", refreshHz, updateHz),
			"Set refresh_rate to 0 or a value at least as fast as update_interval")
	}

	return Cadence{
		Update:  update,
		Refresh: time.Duration(float64(time.Second) / refreshHz),
	}, nil
}

// FPS is the repaint rate in whole frames per second, at least 1.
func (c Cadence) FPS() int {
	if c.Refresh <= 0 {
		return 1
	}
	fps := int(math.Round(float64(time.Second) / float64(c.Refresh)))
	if fps < 1 {
		return 1
	}
	if fps > MaxRefreshHz {
		return MaxRefreshHz
	}
	return fps
}

// RepaintsPerUpdate is how many repaints happen between data updates.
func (c Cadence) RepaintsPerUpdate() int {
	if c.Refresh <= 0 {
		return 1
	}
	return int(c.Update / c.Refresh)
}
