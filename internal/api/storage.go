package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/JaimeStill/biaslens/pkg/handlers"
	"github.com/JaimeStill/biaslens/pkg/routes"
	"github.com/JaimeStill/biaslens/pkg/storage"
)

const snapshotPrefix = "archive/"

type snapshotHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newSnapshotHandler(store storage.System, logger *slog.Logger) *snapshotHandler {
	return &snapshotHandler{
		store:  store,
		logger: logger.With("handler", "snapshots"),
	}
}

func (h *snapshotHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/snapshots",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{key...}", Handler: h.download},
		},
	}
}

// download streams an archive snapshot. The key is relative to the archive
// prefix, e.g. 2026/03/14/<id>.json.
func (h *snapshotHandler) download(w http.ResponseWriter, r *http.Request) {
	key := snapshotPrefix + r.PathValue("key")

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			storage.MapHTTPStatus(err), err,
		)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("snapshot stream interrupted", "key", key, "error", err)
	}
}
