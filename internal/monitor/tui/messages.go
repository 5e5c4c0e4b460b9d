package tui

import "github.com/rileyhilliard/clustertop/internal/monitor"

// frameMsg carries a freshly built frame from the render loop.
type frameMsg struct {
	frame monitor.Frame
}

// staleMsg signals that the last tick failed and the frame on screen is old.
type staleMsg struct {
	err error
}
