package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/rileyhilliard/clustertop/internal/cluster"
	"github.com/rileyhilliard/clustertop/internal/config"
	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/logger"
	"github.com/rileyhilliard/clustertop/internal/metrics"
	"github.com/rileyhilliard/clustertop/internal/monitor"
	"github.com/rileyhilliard/clustertop/internal/monitor/headless"
	"github.com/rileyhilliard/clustertop/internal/monitor/tui"
	"github.com/rileyhilliard/clustertop/internal/source/fake"
	"github.com/rileyhilliard/clustertop/internal/source/kube"
	"github.com/rileyhilliard/clustertop/internal/ui"
)

// dashboardIO carries the streams the dashboard writes to.
type dashboardIO struct {
	Out      io.Writer
	ErrOut   io.Writer
	Headless bool
}

// useTUI reports whether the full-screen dashboard can own the output.
func (d dashboardIO) useTUI() bool {
	if d.Headless {
		return false
	}
	f, ok := d.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runDashboard wires source, loop, renderer and metrics from a validated
// config and blocks until the run is interrupted.
func runDashboard(parent context.Context, cfg *config.Config, dio dashboardIO) error {
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(sigCtx)
	defer cancel(nil)

	if cfg.NoColor {
		ui.DisableColors()
	}

	interactive := dio.useTUI()
	log, closeLog, err := openLogger(cfg, interactive, dio.ErrOut)
	if err != nil {
		return err
	}
	defer closeLog()

	preset, err := monitor.LookupPreset(cfg.Grid)
	if err != nil {
		return err
	}
	cadence, err := monitor.NewCadence(cfg.UpdateInterval, cfg.RefreshRate)
	if err != nil {
		return err
	}

	source, err := newSource(cfg.Source, log)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	opts := []monitor.Option{
		monitor.WithLogger(log.With("component", "loop")),
		monitor.WithRecorder(recorder),
	}
	if cfg.Metrics.Addr != "" {
		srv, err := metrics.Listen(cfg.Metrics.Addr, recorder, log.With("component", "metrics"))
		if err != nil {
			return err
		}
		served := make(chan error, 1)
		go func() { served <- srv.Serve(ctx) }()
		opts = append(opts, monitor.WithCleanup(func(cleanupCtx context.Context) error {
			select {
			case err := <-served:
				return err
			case <-cleanupCtx.Done():
				return cleanupCtx.Err()
			}
		}))
	}

	loopCfg := monitor.LoopConfig{
		Preset:          preset,
		Cadence:         cadence,
		TrendCapacity:   cfg.TrendCapacity,
		AlertRows:       cfg.Alerts.MaxRows,
		FetchTimeout:    cfg.Source.Timeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}

	log.Info("Starting dashboard",
		"source", cfg.Source.Kind,
		"grid", preset.Name,
		"interactive", interactive)

	if interactive {
		bridge := tui.NewBridge()
		loop, err := monitor.NewLoop(loopCfg, source, bridge, opts...)
		if err != nil {
			return err
		}
		err = tui.Run(ctx, cancel, loop, bridge, tui.Options{
			FPS:     cadence.FPS(),
			NoColor: cfg.NoColor,
		})
		return exitStatus(ctx, err)
	}

	renderer := headless.New(dio.Out, log.With("component", "headless"))
	loop, err := monitor.NewLoop(loopCfg, source, renderer, opts...)
	if err != nil {
		return err
	}
	return exitStatus(ctx, loop.Run(ctx))
}

// exitStatus maps a finished run to the command result. Interrupts are a
// normal way to leave and exit 0.
func exitStatus(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(context.Cause(ctx), errors.ErrInterruptRequested) || stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// newSource builds the configured cluster state provider.
func newSource(sc config.SourceConfig, log logger.Logger) (cluster.StateProvider, error) {
	switch sc.Kind {
	case config.SourceKube:
		return kube.New(kube.Options{
			Kubeconfig: sc.Kubeconfig,
			Context:    sc.Context,
			Timeout:    sc.Timeout,
		}, log.With("component", "kube"))
	case config.SourceFake, "":
		return fake.New(fake.Options{
			Seed:    sc.Seed,
			Masters: sc.Masters,
			Workers: sc.Workers,
		})
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown source kind: "+sc.Kind,
			"Set source.kind to fake or kube")
	}
}

// openLogger picks the log destination. The full-screen dashboard owns the
// terminal, so it logs to log.file; headless runs log to stderr.
func openLogger(cfg *config.Config, interactive bool, errOut io.Writer) (logger.Logger, func(), error) {
	// Components are attached by callers with With.
	opts := logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}

	if !interactive || cfg.Log.File == "" {
		if interactive {
			return logger.Noop(), func() {}, nil
		}
		if errOut == nil {
			errOut = os.Stderr
		}
		log := logger.New(errOut, opts)
		logger.SetDefault(log)
		return log, func() {}, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file "+cfg.Log.File,
			"Set log.file or --log-file to a writable path")
	}
	log := logger.New(f, opts)
	logger.SetDefault(log)
	return log, func() { _ = f.Close() }, nil
}
