package monitor

import "fmt"

// SlotID addresses one panel in a Frame. IDs are assigned once when the
// registry is built and never looked up by name afterwards.
type SlotID int

// Fixed slots. Node slots follow from slotNodeBase.
const (
	SlotHeader SlotID = iota
	SlotSummary
	SlotAlerts
	SlotFooter
	slotNodeBase
)

// SlotRegistry enumerates every slot of a layout.
type SlotRegistry struct {
	nodes []SlotID
	names map[SlotID]string
}

// NewSlotRegistry builds the registry for a grid with capacity node slots.
func NewSlotRegistry(capacity int) *SlotRegistry {
	r := &SlotRegistry{
		nodes: make([]SlotID, capacity),
		names: map[SlotID]string{
			SlotHeader:  "header",
			SlotSummary: "summary",
			SlotAlerts:  "alerts",
			SlotFooter:  "footer",
		},
	}
	for i := 0; i < capacity; i++ {
		id := slotNodeBase + SlotID(i)
		r.nodes[i] = id
		r.names[id] = fmt.Sprintf("node_%d", i)
	}
	return r
}

// Node returns the ID of the i-th node slot.
func (r *SlotRegistry) Node(i int) SlotID {
	return r.nodes[i]
}

// NodeCount returns the number of node slots.
func (r *SlotRegistry) NodeCount() int {
	return len(r.nodes)
}

// Name returns the display name of a slot, or "" for an unknown ID.
func (r *SlotRegistry) Name(id SlotID) string {
	return r.names[id]
}

// All returns every slot ID: the fixed slots first, then node slots in order.
func (r *SlotRegistry) All() []SlotID {
	ids := []SlotID{SlotHeader, SlotSummary, SlotAlerts, SlotFooter}
	return append(ids, r.nodes...)
}
