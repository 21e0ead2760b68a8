package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/JaimeStill/biaslens/pkg/lifecycle"
)

// Scheduler triggers the daily run on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	ctx      context.Context
	runner   DailyRunner
	schedule string
	logger   *slog.Logger
}

// NewScheduler parses schedule (standard five-field cron) and registers the
// daily run. Panics inside a scheduled run are recovered and logged.
func NewScheduler(runner DailyRunner, schedule string, logger *slog.Logger) (*Scheduler, error) {
	logger = logger.With("system", "scheduler")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	s := &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		ctx:      context.Background(),
		runner:   runner,
		schedule: schedule,
		logger:   logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins scheduling once startup completes and stops on shutdown,
// waiting for an in-flight run to finish. Scheduled runs use the lifecycle
// context and are cancelled on shutdown.
func (s *Scheduler) Start(lc *lifecycle.Coordinator) error {
	s.ctx = lc.Context()

	lc.OnStartup("scheduler", func(context.Context) error {
		s.cron.Start()
		s.logger.Info("scheduler started", "schedule", s.schedule)
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		done := s.cron.Stop()
		<-done.Done()
		s.logger.Info("scheduler stopped")
	})

	return nil
}

func (s *Scheduler) run() {
	report, err := s.runner.Daily(s.ctx)
	if err != nil {
		s.logger.Warn("scheduled daily run skipped", "error", err)
		return
	}
	s.logger.Info("scheduled daily run finished",
		"archive_success", report.Archive.Success,
		"ingest_success", report.Ingest.Success,
		"duration_ms", report.DurationMS,
	)
}
