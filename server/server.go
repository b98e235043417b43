package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/caasmo/webjarcors/config"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	cfg     config.Server
	handler http.Handler
	logger  *slog.Logger

	ready   chan struct{}
	once    sync.Once
	boundTo net.Addr
}

func NewServer(cfg config.Server, handler http.Handler, logger *slog.Logger) *Server {
	if handler == nil {
		panic("server handler cannot be nil")
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

// Ready is closed once Run has bound the listener or failed to.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound listener address. It waits for Ready and is nil when
// the listen failed.
func (s *Server) Addr() net.Addr {
	<-s.ready
	return s.boundTo
}

// Run serves until ctx is done or the listener fails, then shuts down
// within ShutdownGracefulTimeout.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Server configuration",
		"addr", s.cfg.Addr,
		"read_timeout", s.cfg.ReadTimeout,
		"read_header_timeout", s.cfg.ReadHeaderTimeout,
		"write_timeout", s.cfg.WriteTimeout,
		"idle_timeout", s.cfg.IdleTimeout,
		"shutdown_timeout", s.cfg.ShutdownGracefulTimeout,
	)

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.once.Do(func() { close(s.ready) })
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Addr, err)
	}
	s.once.Do(func() {
		s.boundTo = ln.Addr()
		close(s.ready)
	})

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		IdleTimeout:       s.cfg.IdleTimeout.Duration,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Serve error", "err", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down HTTP server")

		gracefulCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGracefulTimeout.Duration)
		defer cancel()
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// SignalContext is cancelled on SIGHUP, SIGINT, SIGQUIT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent,
		syscall.SIGHUP,  // kill -SIGHUP XXXX
		syscall.SIGINT,  // kill -SIGINT XXXX or Ctrl+c
		syscall.SIGQUIT, // kill -SIGQUIT XXXX
		syscall.SIGTERM,
	)
}
