package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/media"
	"github.com/JaimeStill/biaslens/internal/scores"
)

// Snapshot is the JSON document written for each archived article.
type Snapshot struct {
	ArchivedID uuid.UUID      `json:"archived_id"`
	ArchivedAt time.Time      `json:"archived_at"`
	Media      media.Media    `json:"media"`
	Scores     []scores.Score `json:"scores"`
}

// SnapshotKey returns the blob key for an article archived at t.
func SnapshotKey(t time.Time, mediaID uuid.UUID) string {
	t = t.UTC()
	return fmt.Sprintf("archive/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), mediaID)
}

// snapshot is best effort; failures are logged and never fail the article.
func (a *Archiver) snapshot(
	ctx context.Context,
	logger *slog.Logger,
	archivedID uuid.UUID,
	m media.Media,
	live []scores.Score,
) {
	if a.snapshots == nil {
		return
	}

	now := a.now()
	data, err := json.Marshal(Snapshot{
		ArchivedID: archivedID,
		ArchivedAt: now.UTC(),
		Media:      m,
		Scores:     live,
	})
	if err != nil {
		logger.WarnContext(ctx, "snapshot encode failed", "error", err)
		return
	}

	key := SnapshotKey(now, m.ID)
	if err := a.snapshots.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		logger.WarnContext(ctx, "snapshot upload failed", "key", key, "error", err)
		return
	}
	logger.DebugContext(ctx, "snapshot written", "key", key, "bytes", len(data))
}
