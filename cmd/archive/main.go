// Command archive runs one archival batch outside the server and exits
// non-zero when the batch could not run or any article failed to archive.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/biaslens/internal/archive"
	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/infrastructure"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		batchSize = flag.Int("batch-size", 0, "Articles per batch (default from config)")
		dryRun    = flag.Bool("dry-run", false, "Report candidates without moving anything")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("config load failed: %v", err)
		return 1
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Printf("infrastructure init failed: %v", err)
		return 1
	}
	if err := infra.Start(); err != nil {
		log.Printf("infrastructure start failed: %v", err)
		return 1
	}
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())
	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		infra.Logger.Error("startup failed", "error", err)
		return 1
	}

	var opts []archive.Option
	if infra.Storage != nil {
		opts = append(opts, archive.WithSnapshots(infra.Storage))
	}
	archiver := archive.New(
		archive.NewStore(infra.Database.Connection()),
		cfg.Jobs.ArchiveBatchSize,
		cfg.Jobs.ArchiveMaxAgeDuration(),
		infra.Logger,
		opts...,
	)

	ctx, stop := signal.NotifyContext(infra.Lifecycle.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := archiver.Run(ctx, archive.Options{
		BatchSize: *batchSize,
		DryRun:    *dryRun,
	})
	if err != nil {
		infra.Logger.Error("archive run failed", "error", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		infra.Logger.Error("result encode failed", "error", err)
	}

	if result.Failed > 0 {
		return 1
	}
	return 0
}

