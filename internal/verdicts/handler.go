package verdicts

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/veracity-io/veracity/pkg/handlers"
	"github.com/veracity-io/veracity/pkg/pagination"
	"github.com/veracity-io/veracity/pkg/routes"
)

// Handler provides HTTP endpoints for verdict operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "verdicts"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for verdict endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/verdicts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/{hash}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{hash}", Handler: h.Delete},
		},
	}
}

// Classify decodes a ClassifyCommand JSON body and returns the verdict for
// its hash, classifying through the external model only on a double cache miss.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var cmd ClassifyCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := cmd.Validate(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	v, err := h.sys.Classify(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Find returns the cached verdict for the hash path parameter, or 404 when
// neither tier holds one. It never triggers classification.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	v, err := h.sys.Find(r.Context(), r.PathValue("hash"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// List returns a paginated list of verdicts with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching verdicts.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete invalidates the verdict for the hash path parameter in both tiers.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("hash")); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
