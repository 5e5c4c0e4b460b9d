package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/logger"
)

// Renderer receives frames from the loop. Implementations must not block
// for long: Render and Stale are called on the loop goroutine.
type Renderer interface {
	// Render replaces the displayed frame.
	Render(Frame)
	// Stale reports that the last tick failed and the displayed frame is
	// out of date.
	Stale(error)
}

// Recorder receives loop telemetry.
type Recorder interface {
	MismatchRecorder
	TickCompleted(summary cluster.Summary, took time.Duration)
	TickSkipped(reason string)
}

// State is a render loop lifecycle phase.
type State int32

const (
	StateBuilding State = iota
	StateInitializing
	StateRunning
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// RunContext is the state that survives across ticks. It is created once
// per run and owned by the loop.
type RunContext struct {
	ID        uuid.UUID
	StartTime time.Time
	CPUHist   *TrendBuffer
	MemHist   *TrendBuffer
}

// NewRunContext creates a run context with empty trend buffers.
func NewRunContext(start time.Time, trendCapacity int) *RunContext {
	return &RunContext{
		ID:        uuid.New(),
		StartTime: start,
		CPUHist:   NewTrendBuffer(trendCapacity),
		MemHist:   NewTrendBuffer(trendCapacity),
	}
}

// Uptime is the time elapsed since the run started.
func (r *RunContext) Uptime(now time.Time) time.Duration {
	return now.Sub(r.StartTime)
}

// DefaultShutdownTimeout bounds the cleanup hooks run on shutdown.
const DefaultShutdownTimeout = 2 * time.Second

// LoopConfig is fixed for the lifetime of a loop.
type LoopConfig struct {
	Preset          GridPreset
	Cadence         Cadence
	TrendCapacity   int
	AlertRows       int
	FetchTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Option customises a Loop.
type Option func(*Loop)

// WithLogger sets the loop logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(l *Loop) { l.recorder = r }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// WithCleanup registers a hook run during shutdown, within the shutdown timeout.
func WithCleanup(fn func(context.Context) error) Option {
	return func(l *Loop) { l.cleanups = append(l.cleanups, fn) }
}

// Loop fetches cluster state on a fixed cadence and hands frames to a renderer.
//
// Lifecycle: NewLoop builds the grid skeleton without I/O, Initialize
// renders a complete first frame synchronously, and Run ticks until the
// context is cancelled, then runs cleanup and returns nil.
type Loop struct {
	cfg      LoopConfig
	source   cluster.StateProvider
	renderer Renderer
	log      logger.Logger
	recorder Recorder
	now      func() time.Time
	cleanups []func(context.Context) error

	grid  *Grid
	run   *RunContext
	state atomic.Int32
	seq   uint64
	last  Frame
}

// NewLoop builds the loop and its grid skeleton. It performs no I/O.
func NewLoop(cfg LoopConfig, source cluster.StateProvider, renderer Renderer, opts ...Option) (*Loop, error) {
	if source == nil {
		return nil, errors.New(errors.ErrConfig, "No cluster state source configured", "Set source.kind to fake or kube")
	}
	if renderer == nil {
		return nil, errors.New(errors.ErrConfig, "No renderer configured", "")
	}
	if cfg.Cadence.Update <= 0 {
		c, err := NewCadence(DefaultUpdateInterval, 0)
		if err != nil {
			return nil, err
		}
		cfg.Cadence = c
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	l := &Loop{
		cfg:      cfg,
		source:   source,
		renderer: renderer,
		log:      logger.Noop(),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logger.Noop()
	}
	if l.recorder == nil {
		l.recorder = nopRecorder{}
	}

	l.run = NewRunContext(l.now(), cfg.TrendCapacity)
	l.log = l.log.With("run", l.run.ID.String())

	grid, err := NewGrid(cfg.Preset, l.log, l.recorder)
	if err != nil {
		return nil, err
	}
	l.grid = grid
	l.state.Store(int32(StateBuilding))

	l.log.Debug("Layout built",
		"grid", cfg.Preset.Name,
		"capacity", cfg.Preset.Capacity(),
		"update_interval", cfg.Cadence.Update.String(),
		"refresh", cfg.Cadence.Refresh.String())
	return l, nil
}

// State returns the current lifecycle phase. Safe from any goroutine.
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// RunContext returns the loop's run context.
func (l *Loop) RunContext() *RunContext {
	return l.run
}

// Grid returns the loop's grid.
func (l *Loop) Grid() *Grid {
	return l.grid
}

// LastFrame returns the most recently rendered frame.
func (l *Loop) LastFrame() Frame {
	return l.last
}

// Initialize populates every slot once before the live display starts. If
// the first fetch fails the frame still covers every slot: the summary
// shows the error and node slots are placeholders.
func (l *Loop) Initialize(ctx context.Context) Frame {
	l.setState(StateInitializing)

	if err := l.tick(ctx); err != nil {
		l.reportSkip(err)
		placeholder := l.placeholderFrame(err)
		l.last = placeholder
		l.renderer.Render(placeholder)
		l.renderer.Stale(err)
	}
	return l.last
}

// Run initialises the display if needed and ticks every update interval
// until ctx is cancelled. Cancellation is the only way out and is not an
// error: Run always returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if l.State() == StateBuilding {
		l.Initialize(ctx)
	}
	l.setState(StateRunning)
	l.log.Info("Dashboard running", "grid", l.cfg.Preset.Name, "interval", l.cfg.Cadence.Update.String())

	ticker := time.NewTicker(l.cfg.Cadence.Update)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.shutdown(ctx)
			return nil
		case <-ticker.C:
			_ = l.Tick(ctx)
		}
	}
}

// Tick runs one fetch-aggregate-render cycle. On failure the renderer is
// told the frame is stale and the previous frame stays on screen; the
// error is returned for callers that want it but never stops the loop.
func (l *Loop) Tick(ctx context.Context) error {
	err := l.tick(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		l.reportSkip(err)
		l.renderer.Stale(err)
	}
	return err
}

func (l *Loop) tick(ctx context.Context) error {
	started := l.now()

	state, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	summary, alerts, err := cluster.Aggregate(state.Nodes)
	if err != nil {
		return err
	}

	// Trends are appended before being read so the summary includes this tick.
	l.run.CPUHist.Append(summary.AvgCPU)
	l.run.MemHist.Append(summary.AvgMemory)
	summary.CPUTrend = l.run.CPUHist.Snapshot()
	summary.MemTrend = l.run.MemHist.Snapshot()

	frame := l.frame(started)
	frame.Summary = SummaryPanel(summary)
	frame.Alerts = AlertsPanel(alerts, l.cfg.AlertRows)
	frame.Nodes = l.grid.Place(state.Nodes)
	frame.Health = summary.Health
	frame.Live = true

	l.last = frame
	l.renderer.Render(frame)

	l.recorder.TickCompleted(summary, l.now().Sub(started))
	l.log.Debug("Tick rendered",
		"seq", frame.Seq,
		"nodes", summary.TotalNodes,
		"alerts", summary.AlertsTotal,
		"health", summary.Health.String())
	return nil
}

func (l *Loop) fetch(ctx context.Context) (*cluster.State, error) {
	if l.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.FetchTimeout)
		defer cancel()
	}

	state, err := l.source.ClusterState(ctx)
	if err != nil {
		if errors.IsCode(err, errors.ErrSource) || errors.IsCode(err, errors.ErrInvalidInput) {
			return nil, err
		}
		return nil, errors.WrapSourceUnavailable(err)
	}
	if state == nil {
		return nil, errors.NewInvalidInput("Source returned no cluster state")
	}
	return state, nil
}

func (l *Loop) frame(at time.Time) Frame {
	l.seq++
	return Frame{
		Seq:    l.seq,
		RunID:  l.run.ID.String(),
		At:     at,
		Preset: l.cfg.Preset,
		Header: HeaderPanel(at),
		Footer: FooterPanel(l.run.Uptime(at)),
	}
}

func (l *Loop) placeholderFrame(cause error) Frame {
	frame := l.frame(l.now())
	frame.Summary = AwaitingSummaryPanel(cause)
	frame.Alerts = AlertsPanel(nil, l.cfg.AlertRows)
	frame.Nodes = l.grid.Skeleton()
	return frame
}

func (l *Loop) reportSkip(err error) {
	reason := skipReason(err)
	l.log.Warn("Tick skipped", "reason", reason, "error", errors.Summary(err))
	l.recorder.TickSkipped(reason)
}

func skipReason(err error) string {
	switch {
	case errors.IsCode(err, errors.ErrInvalidInput):
		return errors.ErrInvalidInput
	case errors.IsCode(err, errors.ErrSource):
		return errors.ErrSource
	default:
		return "UNKNOWN"
	}
}

// shutdown runs the cleanup hooks, bounded by the shutdown timeout.
// Interrupts are handled here and never surfaced to the caller.
func (l *Loop) shutdown(ctx context.Context) {
	l.setState(StateShuttingDown)
	l.log.Info("Shutting down", "cause", errors.Summary(context.Cause(ctx)), "uptime", FormatUptime(l.run.Uptime(l.now())))

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.cfg.ShutdownTimeout)
	defer cancel()

	hooks := l.cleanups
	if c, ok := l.source.(cluster.Closer); ok {
		hooks = append(hooks, func(context.Context) error { return c.Close() })
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, hook := range hooks {
			if err := hook(cleanupCtx); err != nil {
				l.log.Warn("Cleanup failed", "error", errors.Summary(err))
			}
		}
	}()

	select {
	case <-done:
	case <-cleanupCtx.Done():
		l.log.Warn("Cleanup timed out", "timeout", l.cfg.ShutdownTimeout.String())
	}
	l.setState(StateStopped)
}

type nopRecorder struct{}

func (nopRecorder) CapacityMismatch(int, int)                    {}
func (nopRecorder) TickCompleted(cluster.Summary, time.Duration) {}
func (nopRecorder) TickSkipped(string)                           {}
