package monitor

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/logger"
)

// GridPreset is a fixed grid shape for node panels.
type GridPreset struct {
	Name string
	Cols int
	Rows int
}

// Capacity is the number of node slots the preset provides.
func (p GridPreset) Capacity() int {
	return p.Cols * p.Rows
}

// Presets is the enumerated set of supported grid shapes, smallest first.
var Presets = []GridPreset{
	{Name: "2x2", Cols: 2, Rows: 2},
	{Name: "3x2", Cols: 3, Rows: 2},
	{Name: "3x3", Cols: 3, Rows: 3},
	{Name: "4x3", Cols: 4, Rows: 3},
	{Name: "4x4", Cols: 4, Rows: 4},
}

// DefaultPresetName is used when no preset is configured.
const DefaultPresetName = "2x2"

// LookupPreset returns the preset with the given name.
func LookupPreset(name string) (GridPreset, error) {
	for _, p := range Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return GridPreset{}, errors.New(errors.ErrLayout,
		fmt.Sprintf("Unknown grid preset %q", name),
		"Use one of: "+PresetNames())
}

// PresetNames lists preset names joined for display.
func PresetNames() string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// Slot is one placed node panel.
type Slot struct {
	ID    SlotID
	Node  *cluster.NodeSample // nil for an empty placeholder
	Panel Panel
}

// Empty reports whether the slot holds a placeholder.
func (s Slot) Empty() bool {
	return s.Node == nil
}

// MismatchRecorder is notified when more nodes arrive than the grid holds.
type MismatchRecorder interface {
	CapacityMismatch(nodes, capacity int)
}

// Grid places nodes onto a fixed-capacity panel grid.
type Grid struct {
	preset   GridPreset
	slots    *SlotRegistry
	log      logger.Logger
	recorder MismatchRecorder
}

// NewGrid creates a grid for the preset. Dimensions below 1 are a layout error.
func NewGrid(preset GridPreset, log logger.Logger, recorder MismatchRecorder) (*Grid, error) {
	if preset.Cols < 1 || preset.Rows < 1 {
		return nil, errors.New(errors.ErrLayout,
			fmt.Sprintf("Invalid grid %dx%d", preset.Cols, preset.Rows),
			"Grid columns and rows must both be at least 1")
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Grid{
		preset:   preset,
		slots:    NewSlotRegistry(preset.Capacity()),
		log:      log,
		recorder: recorder,
	}, nil
}

// Preset returns the grid's preset.
func (g *Grid) Preset() GridPreset {
	return g.preset
}

// Slots returns the slot registry built for this grid.
func (g *Grid) Slots() *SlotRegistry {
	return g.slots
}

// Place maps nodes onto the grid, always returning exactly Cols*Rows slots.
// The first capacity nodes fill slots in input order and the rest of the
// grid is padded with empty placeholders. Extra nodes are dropped; the
// mismatch is logged and recorded but never fails the tick.
func (g *Grid) Place(nodes []cluster.NodeSample) []Slot {
	capacity := g.preset.Capacity()
	if len(nodes) > capacity {
		mismatch := errors.NewCapacityMismatch(len(nodes), capacity)
		g.log.Warn(mismatch.Message, "nodes", len(nodes), "capacity", capacity, "grid", g.preset.Name)
		if g.recorder != nil {
			g.recorder.CapacityMismatch(len(nodes), capacity)
		}
		nodes = nodes[:capacity]
	}

	slots := make([]Slot, capacity)
	for i := range slots {
		slots[i].ID = g.slots.Node(i)
		if i < len(nodes) {
			n := nodes[i]
			slots[i].Node = &n
			slots[i].Panel = NodePanel(n)
		} else {
			slots[i].Panel = EmptyPanel()
		}
	}
	return slots
}

// Skeleton returns an all-placeholder grid, used before any data arrives.
func (g *Grid) Skeleton() []Slot {
	return g.Place(nil)
}
