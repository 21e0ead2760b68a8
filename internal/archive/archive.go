// Package archive moves aged, non-user-submitted media and their scores from
// the live tables into the archive tables.
package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/biaslens/internal/media"
	"github.com/JaimeStill/biaslens/internal/scores"
)

// State is a step in the per-article archival sequence.
type State string

// Archival states in transition order.
const (
	StatePending       State = "pending"
	StateCopied        State = "copied"
	StateScoresCopied  State = "scores-copied"
	StateScoresDeleted State = "scores-deleted"
	StateDeleted       State = "deleted"
)

// Options controls one archival run. A non-positive BatchSize uses the
// configured default.
type Options struct {
	BatchSize int  `json:"batch_size"`
	DryRun    bool `json:"dry_run"`
}

// Item reports the final state of one candidate article.
type Item struct {
	MediaID    uuid.UUID  `json:"media_id"`
	ArchivedID *uuid.UUID `json:"archived_id,omitempty"`
	Title      string     `json:"title"`
	State      State      `json:"state"`
	Scores     int        `json:"scores"`
	Error      string     `json:"error,omitempty"`
}

// ItemError records an article whose archival stopped early.
type ItemError struct {
	MediaID uuid.UUID `json:"media_id"`
	Message string    `json:"message"`
}

// Result summarizes one archival run. In a dry run Processed is the number
// of eligible articles and nothing is mutated.
type Result struct {
	Processed      int         `json:"processed"`
	Archived       int         `json:"archived"`
	Failed         int         `json:"failed"`
	ScoresArchived int         `json:"scores_archived"`
	DryRun         bool        `json:"dry_run"`
	Cutoff         time.Time   `json:"cutoff"`
	Errors         []ItemError `json:"errors"`
	Items          []Item      `json:"items"`
}

// Store performs the data steps of archival. Each call stands alone; there
// is no transaction spanning an article.
type Store interface {
	Candidates(ctx context.Context, cutoff time.Time, limit int) ([]media.Media, error)
	Scores(ctx context.Context, mediaID uuid.UUID) ([]scores.Score, error)
	CopyMedia(ctx context.Context, m media.Media) (uuid.UUID, error)
	CopyScores(ctx context.Context, items []scores.Score) (int, error)
	DeleteScores(ctx context.Context, mediaID uuid.UUID) (int64, error)
	DeleteMedia(ctx context.Context, mediaID uuid.UUID) error
}

// Uploader writes archive snapshots. storage.System satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) error
}

// Archiver runs archival batches.
type Archiver struct {
	store     Store
	snapshots Uploader
	batchSize int
	maxAge    time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// Option customizes an Archiver.
type Option func(*Archiver)

// WithSnapshots enables JSON snapshots of each archived article.
func WithSnapshots(u Uploader) Option {
	return func(a *Archiver) {
		a.snapshots = u
	}
}

// WithClock replaces time.Now for cutoff computation.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) {
		a.now = now
	}
}

// New creates an Archiver. Articles older than maxAge are eligible.
func New(store Store, batchSize int, maxAge time.Duration, logger *slog.Logger, opts ...Option) *Archiver {
	a := &Archiver{
		store:     store,
		batchSize: batchSize,
		maxAge:    maxAge,
		now:       time.Now,
		logger:    logger.With("system", "archive"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run archives up to opts.BatchSize eligible articles, oldest first. A failed
// candidate query is returned as an error. Any per-article failure is recorded
// in the result and the batch continues; completed steps are not rolled back.
func (a *Archiver) Run(ctx context.Context, opts Options) (*Result, error) {
	limit := opts.BatchSize
	if limit <= 0 {
		limit = a.batchSize
	}

	cutoff := a.now().Add(-a.maxAge).UTC()

	candidates, err := a.store.Candidates(ctx, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("select archive candidates: %w", err)
	}

	result := &Result{
		DryRun: opts.DryRun,
		Cutoff: cutoff,
		Errors: []ItemError{},
		Items:  make([]Item, 0, len(candidates)),
	}

	a.logger.InfoContext(ctx, "archive run started",
		"candidates", len(candidates),
		"batch_size", limit,
		"cutoff", cutoff,
		"dry_run", opts.DryRun,
	)

	if opts.DryRun {
		result.Processed = len(candidates)
		for _, m := range candidates {
			result.Items = append(result.Items, Item{MediaID: m.ID, Title: m.Title, State: StatePending})
		}
		return result, nil
	}

	for _, m := range candidates {
		if err := ctx.Err(); err != nil {
			a.logger.WarnContext(ctx, "archive run interrupted", "error", err)
			break
		}

		item := a.archive(ctx, m)
		result.Processed++
		result.Items = append(result.Items, item)

		if item.Error != "" {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{MediaID: m.ID, Message: item.Error})
			continue
		}

		result.Archived++
		result.ScoresArchived += item.Scores
	}

	a.logger.InfoContext(ctx, "archive run complete",
		"processed", result.Processed,
		"archived", result.Archived,
		"failed", result.Failed,
		"scores_archived", result.ScoresArchived,
	)

	return result, nil
}

func (a *Archiver) archive(ctx context.Context, m media.Media) Item {
	item := Item{MediaID: m.ID, Title: m.Title, State: StatePending}
	logger := a.logger.With("media_id", m.ID)

	fail := func(step string, err error) Item {
		item.Error = fmt.Sprintf("%s: %v", step, err)
		logger.ErrorContext(ctx, "article archival failed", "state", item.State, "step", step, "error", err)
		return item
	}

	advance := func(s State, args ...any) {
		item.State = s
		logger.InfoContext(ctx, "archive state", append([]any{"state", s}, args...)...)
	}

	logger.InfoContext(ctx, "archive state", "state", item.State, "title", m.Title)

	live, err := a.store.Scores(ctx, m.ID)
	if err != nil {
		return fail("fetch scores", err)
	}

	archivedID, err := a.store.CopyMedia(ctx, m)
	if err != nil {
		return fail("copy media", err)
	}
	item.ArchivedID = &archivedID
	advance(StateCopied, "archived_id", archivedID)

	if len(live) == 0 {
		logger.WarnContext(ctx, "article has no scores to archive")
	}
	copied, err := a.store.CopyScores(ctx, live)
	if err != nil {
		return fail("copy scores", err)
	}
	item.Scores = copied
	advance(StateScoresCopied, "scores", copied)

	a.snapshot(ctx, logger, archivedID, m, live)

	deleted, err := a.store.DeleteScores(ctx, m.ID)
	if err != nil {
		return fail("delete scores", err)
	}
	advance(StateScoresDeleted, "scores", deleted)

	if err := a.store.DeleteMedia(ctx, m.ID); err != nil {
		return fail("delete media", err)
	}
	advance(StateDeleted)

	return item
}
