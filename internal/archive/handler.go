package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/biaslens/pkg/handlers"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

// ErrInvalidOptions is returned for malformed archive query parameters.
var ErrInvalidOptions = errors.New("invalid archive options")

// Runner runs an archival batch.
type Runner interface {
	Run(ctx context.Context, opts Options) (*Result, error)
}

// Handler exposes archival as an HTTP endpoint.
type Handler struct {
	runner Runner
	logger *slog.Logger
}

// NewHandler creates a Handler for runner.
func NewHandler(runner Runner, logger *slog.Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger.With("handler", "archive"),
	}
}

// Routes returns the route group definition for the archive endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/archive",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Run},
		},
	}
}

// Run archives one batch. Query parameters: batch_size (int), dry_run (bool).
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	opts, err := OptionsFromQuery(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.runner.Run(r.Context(), opts)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// OptionsFromQuery parses batch_size and dry_run from the request query.
func OptionsFromQuery(r *http.Request) (Options, error) {
	var opts Options
	values := r.URL.Query()

	if v := values.Get("batch_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("%w: batch_size must be a positive integer", ErrInvalidOptions)
		}
		opts.BatchSize = n
	}

	if v := values.Get("dry_run"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: dry_run must be a boolean", ErrInvalidOptions)
		}
		opts.DryRun = b
	}

	return opts, nil
}
