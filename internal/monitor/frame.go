package monitor

import (
	"time"

	"github.com/rileyhilliard/clustertop/internal/cluster"
)

// Frame is everything a renderer needs to draw one tick. Frames are built
// fresh every tick and never mutated after being handed to a renderer.
type Frame struct {
	Seq    uint64
	RunID  string
	At     time.Time
	Preset GridPreset

	Header  Panel
	Summary Panel
	Alerts  Panel
	Footer  Panel
	Nodes   []Slot

	// Health is the tier of the tick that produced the frame. It is only
	// meaningful when Live is true.
	Health cluster.Health
	// Live is false for the placeholder frame shown before data arrives.
	Live bool
}

// Panel returns the panel bound to a slot, or an empty placeholder for an
// ID outside this frame.
func (f Frame) Panel(id SlotID) Panel {
	switch id {
	case SlotHeader:
		return f.Header
	case SlotSummary:
		return f.Summary
	case SlotAlerts:
		return f.Alerts
	case SlotFooter:
		return f.Footer
	}
	for _, s := range f.Nodes {
		if s.ID == id {
			return s.Panel
		}
	}
	return EmptyPanel()
}

// Row returns the node slots of grid row r.
func (f Frame) Row(r int) []Slot {
	cols := f.Preset.Cols
	start, end := r*cols, (r+1)*cols
	if cols <= 0 || start >= len(f.Nodes) {
		return nil
	}
	if end > len(f.Nodes) {
		end = len(f.Nodes)
	}
	return f.Nodes[start:end]
}
