package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/veracity-io/veracity/internal/config"
	"github.com/veracity-io/veracity/internal/infrastructure"
	"github.com/veracity-io/veracity/pkg/lifecycle"
)

type httpServer struct {
	server *http.Server
	logger *slog.Logger
}

func newHTTPServer(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	handler http.Handler,
) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
			WriteTimeout: cfg.Server.WriteTimeoutDuration(),
			IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
		},
		logger: infra.Logger.With("system", "http"),
	}
}

// Start begins listening in a goroutine and registers a shutdown hook that
// drains in-flight requests when the lifecycle context is cancelled.
func (h *httpServer) Start(lc *lifecycle.Coordinator) error {
	go func() {
		h.logger.Info("http server listening", "addr", h.server.Addr)

		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("http server failed", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		h.logger.Info("draining http server")

		if err := h.server.Shutdown(context.Background()); err != nil {
			h.logger.Error("http shutdown failed", "error", err)
			return
		}

		h.logger.Info("http server stopped")
	})

	return nil
}
