package main

import (
	"fmt"

	"github.com/veracity-io/veracity/internal/config"
	"github.com/veracity-io/veracity/internal/infrastructure"
)

// Server wires infrastructure, API modules, and the HTTP listener into a
// single lifecycle-managed unit.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

// NewServer constructs the full server from configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules := NewModules(cfg, infra)

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(cfg, infra, modules.Router()),
	}, nil
}

// Start brings up infrastructure, waits for startup hooks to settle, and
// begins serving HTTP.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting server",
		"env", s.cfg.Env(),
		"addr", s.cfg.Server.Addr(),
	)

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return fmt.Errorf("start http: %w", err)
	}

	s.infra.Lifecycle.WaitForStartup()
	s.infra.Logger.Info("server ready")
	return nil
}

// Shutdown cancels the lifecycle context and waits for all shutdown hooks
// within the configured timeout.
func (s *Server) Shutdown() error {
	s.infra.Logger.Info("shutting down server")

	timeout := s.cfg.ShutdownTimeoutDuration()
	if err := s.infra.Lifecycle.Shutdown(timeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.infra.Logger.Info("server stopped")
	return nil
}
