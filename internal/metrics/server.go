package metrics

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rileyhilliard/clustertop/internal/errors"
	"github.com/rileyhilliard/clustertop/internal/logger"
)

const shutdownGrace = 2 * time.Second

// Server serves /metrics for a Recorder.
type Server struct {
	srv      *http.Server
	listener net.Listener
	log      logger.Logger
}

// Listen binds addr and prepares the handler. Binding up front surfaces a
// busy port as a startup error instead of a background log line.
func Listen(addr string, r *Recorder, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Noop()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't start metrics endpoint on "+addr,
			"Pick a free address with --metrics-addr, or leave it empty to disable")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.Registry(), promhttp.HandlerOpts{}))

	return &Server{
		srv:      &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		listener: ln,
		log:      log,
	}, nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until ctx is cancelled, then shuts the server down.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.listener)
	}()
	s.log.Info("Metrics endpoint listening", "addr", s.Addr())

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("Metrics endpoint shutdown failed", "error", err)
		return err
	}
	return nil
}
