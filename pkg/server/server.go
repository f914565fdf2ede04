package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"catascii-hq/catascii/pkg/config"
	"catascii-hq/catascii/pkg/web/handlers"
	"catascii-hq/catascii/pkg/web/middleware"
)

// Server owns the public listener and, optionally, an admin listener.
type Server struct {
	config *config.ServerConfig
	art    http.Handler
	logger *slog.Logger

	adminAddress string
	adminHandler http.Handler

	mu         sync.RWMutex
	httpServer *http.Server
	addr       net.Addr
	isRunning  bool
}

// New creates a server that serves art on GET /.
func New(cfg *config.ServerConfig, art http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config: cfg,
		art:    art,
		logger: logger,
	}
}

// SetAdmin enables a second listener on address serving h. It must be called
// before Run.
func (s *Server) SetAdmin(address string, h http.Handler) {
	s.adminAddress = address
	s.adminHandler = h
}

// Handler returns the public handler with routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

func (s *Server) setupRoutes() http.Handler {
	return middleware.Chain(
		handlers.NewMux(s.art),
		middleware.RecoveryMiddleware(s.logger),
		middleware.LoggingMiddleware(s.logger),
		middleware.RequestIDMiddleware,
	)
}

// Run binds the configured listen address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.config.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done or a serve loop fails, then drains.
// ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server is already running")
	}
	s.isRunning = true
	s.addr = ln.Addr()
	s.httpServer = s.newHTTPServer(s.setupRoutes())
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	servers := []*http.Server{s.httpServer}
	listeners := []net.Listener{ln}

	if s.adminHandler != nil && s.adminAddress != "" {
		adminLn, err := net.Listen("tcp", s.adminAddress)
		if err != nil {
			ln.Close()
			return fmt.Errorf("failed to bind admin listener %s: %w", s.adminAddress, err)
		}
		servers = append(servers, s.newHTTPServer(s.adminHandler))
		listeners = append(listeners, adminLn)
		s.logger.Info("admin listener started", "address", adminLn.Addr().String())
	}

	s.logger.Info("listening", "address", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)

	for i := range servers {
		srv, l := servers[i], listeners[i]
		g.Go(func() error {
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown(servers)
	})

	return g.Wait()
}

// shutdown drains every server, bounded by ShutdownTimeout when it is set.
func (s *Server) shutdown(servers []*http.Server) error {
	s.logger.Warn("initiating graceful shutdown", "timeout", s.config.ShutdownTimeout.String())

	ctx := context.Background()
	if s.config.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
		}
	}
	if len(errs) == 0 {
		s.logger.Info("server stopped")
	}
	return errors.Join(errs...)
}

func (s *Server) newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		MaxHeaderBytes:    s.config.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
}

// Addr returns the bound public address, or nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// IsRunning reports whether Serve is in progress.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
