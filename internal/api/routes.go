package api

import (
	"net/http"

	"github.com/veracity-io/veracity/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(mux,
		domain.Verdicts.Handler().Routes(),
	)
}
