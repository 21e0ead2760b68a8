// Package jobs runs the daily maintenance sequence (archive then ingest) on
// demand over HTTP and on an in-process cron schedule.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/biaslens/internal/archive"
	"github.com/JaimeStill/biaslens/internal/ingest"
)

// ErrAlreadyRunning is returned when a daily run is requested while one is active.
var ErrAlreadyRunning = errors.New("daily job already running")

// Archiver runs one archival batch.
type Archiver interface {
	Run(ctx context.Context, opts archive.Options) (*archive.Result, error)
}

// Ingester runs one ingestion pass.
type Ingester interface {
	Run(ctx context.Context) (*ingest.Report, error)
}

// Phase reports one step of the daily run. Exactly one of Result and Error is set.
type Phase struct {
	Success    bool   `json:"success"`
	DurationMS int64  `json:"duration_ms"`
	Result     any    `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
}

// DailyReport is the outcome of a daily run.
type DailyReport struct {
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Archive    Phase     `json:"archive"`
	Ingest     Phase     `json:"ingest"`
}

// Runner sequences the daily phases. Only one run may be active at a time.
type Runner struct {
	archiver  Archiver
	ingester  Ingester
	batchSize int
	timeout   time.Duration
	logger    *slog.Logger
	running   sync.Mutex
}

// NewRunner creates a Runner. batchSize is the archive batch size and
// timeout bounds a whole run; zero disables the bound.
func NewRunner(a Archiver, i Ingester, batchSize int, timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		archiver:  a,
		ingester:  i,
		batchSize: batchSize,
		timeout:   timeout,
		logger:    logger.With("system", "jobs"),
	}
}

// Daily archives one batch and then ingests. A failure in either phase is
// captured in its Phase and does not stop the other.
func (r *Runner) Daily(ctx context.Context) (*DailyReport, error) {
	if !r.running.TryLock() {
		return nil, ErrAlreadyRunning
	}
	defer r.running.Unlock()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	report := &DailyReport{StartedAt: start.UTC()}
	r.logger.InfoContext(ctx, "daily job started")

	report.Archive = r.phase(ctx, "archive", func(ctx context.Context) (any, error) {
		return r.archiver.Run(ctx, archive.Options{BatchSize: r.batchSize})
	})

	report.Ingest = r.phase(ctx, "ingest", func(ctx context.Context) (any, error) {
		return r.ingester.Run(ctx)
	})

	report.DurationMS = time.Since(start).Milliseconds()
	r.logger.InfoContext(ctx, "daily job complete",
		"archive_success", report.Archive.Success,
		"ingest_success", report.Ingest.Success,
		"duration", time.Since(start),
	)
	return report, nil
}

func (r *Runner) phase(ctx context.Context, name string, fn func(context.Context) (any, error)) Phase {
	start := time.Now()
	result, err := fn(ctx)

	p := Phase{DurationMS: time.Since(start).Milliseconds()}
	if err != nil {
		p.Error = err.Error()
		r.logger.ErrorContext(ctx, "daily phase failed", "phase", name, "error", err)
		return p
	}

	p.Success = true
	p.Result = result
	return p
}
