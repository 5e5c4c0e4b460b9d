package tui

import (
	"context"
	stderrors "errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/monitor"
)

// Loop is the part of monitor.Loop the TUI drives.
type Loop interface {
	Initialize(ctx context.Context) monitor.Frame
	Run(ctx context.Context) error
}

// Options configures the terminal program.
type Options struct {
	// FPS caps repaints per second. It comes from the loop cadence.
	FPS int
	// NoColor renders without ANSI colors.
	NoColor bool
	// Input and Output override the terminal, for tests.
	Input  io.Reader
	Output io.Writer
}

// Run initialises the loop, starts the TUI on the alternate screen and
// blocks until the operator quits or ctx is cancelled. The loop runs in a
// background goroutine while the TUI owns the main one.
func Run(ctx context.Context, cancel context.CancelCauseFunc, loop Loop, bridge *Bridge, opts Options) error {
	if opts.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The first frame is built before the screen switches so the initial
	// paint is complete.
	loop.Initialize(ctx)
	model := NewModel(cancel).seed(bridge.drain())

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.FPS > 0 {
		programOpts = append(programOpts, tea.WithFPS(opts.FPS))
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	program := tea.NewProgram(model, programOpts...)
	bridge.Attach(program)

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- loop.Run(ctx)
		program.Quit()
	}()

	_, runErr := program.Run()
	cancel(errors.ErrInterruptRequested)
	loopErr := <-loopDone

	if runErr != nil && !stderrors.Is(runErr, tea.ErrProgramKilled) && !stderrors.Is(runErr, tea.ErrInterrupted) {
		return errors.WrapWithCode(runErr, errors.ErrLayout,
			"Terminal dashboard failed",
			"Try --headless to print frames as plain text")
	}
	return loopErr
}
