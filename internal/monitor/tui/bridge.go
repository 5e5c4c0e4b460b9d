package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// Bridge implements monitor.Renderer and forwards frames to the Bubble Tea
// program via program.Send(). This is goroutine-safe.
//
// Until a program is attached, messages are queued so the first frame can
// be built before the terminal switches to the alternate screen.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	pending []tea.Msg
}

// NewBridge creates a bridge with no program attached.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach connects the bridge to a program. Later messages go straight to it.
func (b *Bridge) Attach(program *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = program
}

// Render forwards a frame to the TUI.
func (b *Bridge) Render(f monitor.Frame) {
	b.send(frameMsg{frame: f})
}

// Stale forwards a failed-tick notification to the TUI.
func (b *Bridge) Stale(err error) {
	b.send(staleMsg{err: err})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	program := b.program
	if program == nil {
		b.pending = append(b.pending, msg)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()

	program.Send(msg)
}

// drain returns and clears the queued messages.
func (b *Bridge) drain() []tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.pending
	b.pending = nil
	return msgs
}

var _ monitor.Renderer = (*Bridge)(nil)
