package api

import (
	"context"
	"fmt"

	"github.com/JaimeStill/biaslens/internal/analysis"
	"github.com/JaimeStill/biaslens/internal/archive"
	"github.com/JaimeStill/biaslens/internal/categories"
	"github.com/JaimeStill/biaslens/internal/extractor"
	"github.com/JaimeStill/biaslens/internal/ingest"
	"github.com/JaimeStill/biaslens/internal/jobs"
	"github.com/JaimeStill/biaslens/internal/media"
	"github.com/JaimeStill/biaslens/internal/scores"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Categories categories.System
	Media      media.System
	Scores     scores.System
	Extractor  *extractor.Extractor
	Providers  *analysis.Providers
	Analysis   *analysis.Orchestrator
	Archive    *archive.Archiver
	Ingest     *ingest.Ingester
	Jobs       *jobs.Runner
}

// NewDomain creates all domain systems from the API runtime.
// Model clients are closed when the lifecycle shuts down.
func NewDomain(ctx context.Context, runtime *Runtime) (*Domain, error) {
	cfg := runtime.Config
	db := runtime.Database.Connection()

	categoriesSystem := categories.New(db, runtime.Logger)
	mediaSystem := media.New(db, runtime.Logger, runtime.Pagination)
	scoresSystem := scores.New(db, runtime.Logger, runtime.Pagination)
	ext := extractor.New(&cfg.Extractor, nil, runtime.Logger)

	providers, err := analysis.NewProviders(ctx, &cfg.Providers, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("providers init failed: %w", err)
	}
	runtime.Lifecycle.OnShutdown(func() {
		<-runtime.Lifecycle.Context().Done()
		if err := providers.Close(); err != nil {
			runtime.Logger.Error("provider close failed", "error", err)
		}
	})

	orchestrator := analysis.New(
		ext,
		categoriesSystem,
		scoresSystem,
		providers.Scorers(),
		runtime.Logger,
	)

	var opts []archive.Option
	if runtime.Storage != nil {
		opts = append(opts, archive.WithSnapshots(runtime.Storage))
	}
	archiver := archive.New(
		archive.NewStore(db),
		cfg.Jobs.ArchiveBatchSize,
		cfg.Jobs.ArchiveMaxAgeDuration(),
		runtime.Logger,
		opts...,
	)

	ingester := ingest.New(
		ingest.NewNewsClient(&cfg.News, nil),
		categoriesSystem,
		mediaSystem,
		orchestrator,
		cfg.News.RequestDelayDuration(),
		cfg.Jobs.AnalysisDelayDuration(),
		runtime.Logger,
	)

	runner := jobs.NewRunner(
		archiver,
		ingester,
		cfg.Jobs.ArchiveBatchSize,
		cfg.Jobs.RunTimeoutDuration(),
		runtime.Logger,
	)

	return &Domain{
		Categories: categoriesSystem,
		Media:      mediaSystem,
		Scores:     scoresSystem,
		Extractor:  ext,
		Providers:  providers,
		Analysis:   orchestrator,
		Archive:    archiver,
		Ingest:     ingester,
		Jobs:       runner,
	}, nil
}
