// Package tui renders dashboard frames in a full-screen Bubble Tea program.
//
// The render loop never touches the model directly. Frames and stale
// notifications travel through a Bridge, which turns them into messages
// delivered with program.Send. The model only ever holds the latest frame.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// Terminal size assumed until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 36
)

// Model is the Bubble Tea model for the cluster dashboard.
type Model struct {
	frame    *monitor.Frame
	stale    error
	width    int
	height   int
	quitting bool

	// cancel stops the render loop when the operator quits.
	cancel context.CancelCauseFunc

	// One bar per metric style so each keeps its fill color.
	bars map[monitor.Style]progress.Model
}

// NewModel creates a dashboard model. cancel is invoked with
// errors.ErrInterruptRequested when the operator quits.
func NewModel(cancel context.CancelCauseFunc) Model {
	bars := make(map[monitor.Style]progress.Model)
	for _, s := range []monitor.Style{monitor.StyleHealthy, monitor.StyleWarning, monitor.StyleCritical, monitor.StyleNeutral} {
		bars[s] = progress.New(
			progress.WithSolidFill(string(colorFor(s))),
			progress.WithoutPercentage(), // We render our own
			progress.WithColorProfile(lipgloss.ColorProfile()),
		)
	}

	return Model{
		width:  defaultWidth,
		height: defaultHeight,
		cancel: cancel,
		bars:   bars,
	}
}

// seed applies queued messages before the program starts.
func (m Model) seed(msgs []tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			if m.cancel != nil {
				m.cancel(errors.ErrInterruptRequested)
			}
			return m, tea.Quit
		}
		return m, nil

	case frameMsg:
		f := msg.frame
		m.frame = &f
		m.stale = nil
		return m, nil

	case staleMsg:
		m.stale = msg.err
		return m, nil
	}

	return m, nil
}

// Frame returns the frame currently displayed, if any.
func (m Model) Frame() (monitor.Frame, bool) {
	if m.frame == nil {
		return monitor.Frame{}, false
	}
	return *m.frame, true
}

// Stale returns the error from the last failed tick, or nil once a fresh
// frame has arrived.
func (m Model) Stale() error {
	return m.stale
}

// Quitting reports whether the operator asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}
