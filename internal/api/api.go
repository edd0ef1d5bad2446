// Package api mounts the verdict domain behind a prefix-routed HTTP module
// with request logging and CORS middleware.
package api

import (
	"net/http"

	"github.com/veracity-io/veracity/internal/config"
	"github.com/veracity-io/veracity/internal/infrastructure"
	"github.com/veracity-io/veracity/pkg/middleware"
	"github.com/veracity-io/veracity/pkg/module"
)

// NewModule builds the API module from configuration and infrastructure.
// It initializes domain systems, registers their routes, and applies the
// middleware stack.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Module {
	rt := &Runtime{
		Infrastructure: infra,
		Pagination:     cfg.API.Pagination,
	}

	domain := newDomain(rt)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(infra.Logger))

	return m
}
