package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/biaslens/pkg/handlers"
	"github.com/JaimeStill/biaslens/pkg/middleware"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

// DailyRunner runs the daily sequence.
type DailyRunner interface {
	Daily(ctx context.Context) (*DailyReport, error)
}

// Handler exposes job endpoints behind a shared bearer secret.
type Handler struct {
	runner   DailyRunner
	secret   string
	children []routes.Group
	logger   *slog.Logger
}

// NewHandler creates a Handler. children are mounted under /jobs and share
// the bearer check.
func NewHandler(runner DailyRunner, secret string, logger *slog.Logger, children ...routes.Group) *Handler {
	return &Handler{
		runner:   runner,
		secret:   secret,
		children: children,
		logger:   logger.With("handler", "jobs"),
	}
}

// Routes returns the route group definition for job endpoints. Every route
// requires "Authorization: Bearer <secret>".
func (h *Handler) Routes() routes.Group {
	group := routes.Group{
		Prefix: "/jobs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/daily", Handler: h.Daily},
			{Method: "POST", Pattern: "/daily", Handler: h.Daily},
		},
		Children: h.children,
	}
	return routes.Wrap(group, middleware.BearerToken(h.secret))
}

// Daily runs archive then ingest and reports both phases. Phase failures
// still return 200; a panic returns 500 with the elapsed time.
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			h.logger.ErrorContext(r.Context(), "daily job panicked", "panic", rec)
			handlers.RespondJSON(w, http.StatusInternalServerError, map[string]any{
				"success":    false,
				"error":      fmt.Sprint(rec),
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
		}
	}()

	report, err := h.runner.Daily(r.Context())
	if errors.Is(err, ErrAlreadyRunning) {
		handlers.RespondError(w, h.logger, http.StatusConflict, err)
		return
	}
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"report":  report,
	})
}
