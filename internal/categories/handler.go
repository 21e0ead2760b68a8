package categories

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/pkg/handlers"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

// Handler provides read-only HTTP endpoints for categories.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "categories"),
	}
}

// Routes returns the route group definition for category endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/categories",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.ListBias},
			{Method: "GET", Pattern: "/news", Handler: h.ListNews},
			{Method: "GET", Pattern: "/{id}", Handler: h.FindBias},
		},
	}
}

// ListBias returns all bias categories.
func (h *Handler) ListBias(w http.ResponseWriter, r *http.Request) {
	cats, err := h.sys.ListBias(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, cats)
}

// ListNews returns enabled news categories.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	cats, err := h.sys.ListNews(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, cats)
}

// FindBias returns a single bias category by its UUID path parameter.
func (h *Handler) FindBias(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	c, err := h.sys.FindBias(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, c)
}
