package main

import (
	"net/http"

	"github.com/veracity-io/veracity/internal/api"
	"github.com/veracity-io/veracity/internal/config"
	"github.com/veracity-io/veracity/internal/infrastructure"
	"github.com/veracity-io/veracity/pkg/handlers"
	"github.com/veracity-io/veracity/pkg/module"
)

// Modules holds the mounted API modules and the top-level router.
type Modules struct {
	router *module.Router
}

// NewModules builds the router, mounts the API module, and registers the
// health and readiness endpoints on the native mux.
func NewModules(cfg *config.Config, infra *infrastructure.Infrastructure) *Modules {
	router := module.NewRouter()
	router.Mount(api.NewModule(cfg, infra))

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": cfg.Version,
		})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "starting",
			})
			return
		}

		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status": "ready",
		})
	})

	return &Modules{router: router}
}

// Router returns the top-level HTTP handler.
func (m *Modules) Router() http.Handler {
	return m.router
}
