// Package testing provides test doubles for the monitor package.
package testing

import (
	"sync"
	"time"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// RecordingRenderer captures everything the render loop hands it.
type RecordingRenderer struct {
	mu     sync.Mutex
	frames []monitor.Frame
	stale  []error
	events []string
}

// NewRecordingRenderer creates an empty recorder.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{}
}

// Render records a frame.
func (r *RecordingRenderer) Render(f monitor.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	r.events = append(r.events, "render")
}

// Stale records a stale notification.
func (r *RecordingRenderer) Stale(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = append(r.stale, err)
	r.events = append(r.events, "stale")
}

// Frames returns a copy of the recorded frames.
func (r *RecordingRenderer) Frames() []monitor.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]monitor.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// StaleErrors returns a copy of the recorded stale errors.
func (r *RecordingRenderer) StaleErrors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.stale))
	copy(out, r.stale)
	return out
}

// Events returns the order of calls, "render" or "stale".
func (r *RecordingRenderer) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// FrameCount returns the number of frames rendered.
func (r *RecordingRenderer) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Last returns the newest frame, if any.
func (r *RecordingRenderer) Last() (monitor.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return monitor.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

var _ monitor.Renderer = (*RecordingRenderer)(nil)

// RecordingMetrics captures recorder callbacks.
type RecordingMetrics struct {
	mu         sync.Mutex
	Mismatches [][2]int
	Completed  []cluster.Summary
	Skipped    []string
}

// CapacityMismatch records a truncation.
func (m *RecordingMetrics) CapacityMismatch(nodes, capacity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mismatches = append(m.Mismatches, [2]int{nodes, capacity})
}

// TickCompleted records a successful tick.
func (m *RecordingMetrics) TickCompleted(s cluster.Summary, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completed = append(m.Completed, s)
}

// TickSkipped records a failed tick.
func (m *RecordingMetrics) TickSkipped(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Skipped = append(m.Skipped, reason)
}

// SkippedReasons returns a copy of the recorded skip reasons.
func (m *RecordingMetrics) SkippedReasons() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Skipped...)
}

// CompletedCount returns the number of successful ticks.
func (m *RecordingMetrics) CompletedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Completed)
}

var _ monitor.Recorder = (*RecordingMetrics)(nil)

// MismatchCount returns the number of recorded truncations.
func (m *RecordingMetrics) MismatchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Mismatches)
}
