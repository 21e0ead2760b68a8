package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// JobsConfig holds settings for the scheduled archive and ingest jobs.
// Schedule is a standard five-field cron expression; empty disables the
// in-process scheduler and leaves triggering to the HTTP endpoint.
type JobsConfig struct {
	Secret           string `toml:"secret"`
	Schedule         string `toml:"schedule"`
	ArchiveBatchSize int    `toml:"archive_batch_size"`
	ArchiveMaxAge    string `toml:"archive_max_age"`
	AnalysisDelay    string `toml:"analysis_delay"`
	RunTimeout       string `toml:"run_timeout"`
}

// ArchiveMaxAgeDuration returns ArchiveMaxAge as a time.Duration.
func (c *JobsConfig) ArchiveMaxAgeDuration() time.Duration {
	d, _ := time.ParseDuration(c.ArchiveMaxAge)
	return d
}

// AnalysisDelayDuration returns AnalysisDelay as a time.Duration.
func (c *JobsConfig) AnalysisDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.AnalysisDelay)
	return d
}

// RunTimeoutDuration returns RunTimeout as a time.Duration.
func (c *JobsConfig) RunTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RunTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *JobsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *JobsConfig) Merge(overlay *JobsConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Schedule != "" {
		c.Schedule = overlay.Schedule
	}
	if overlay.ArchiveBatchSize != 0 {
		c.ArchiveBatchSize = overlay.ArchiveBatchSize
	}
	if overlay.ArchiveMaxAge != "" {
		c.ArchiveMaxAge = overlay.ArchiveMaxAge
	}
	if overlay.AnalysisDelay != "" {
		c.AnalysisDelay = overlay.AnalysisDelay
	}
	if overlay.RunTimeout != "" {
		c.RunTimeout = overlay.RunTimeout
	}
}

func (c *JobsConfig) loadDefaults() {
	if c.ArchiveBatchSize == 0 {
		c.ArchiveBatchSize = 25
	}
	if c.ArchiveMaxAge == "" {
		c.ArchiveMaxAge = "24h"
	}
	if c.AnalysisDelay == "" {
		c.AnalysisDelay = "5s"
	}
	if c.RunTimeout == "" {
		c.RunTimeout = "15m"
	}
}

func (c *JobsConfig) loadEnv() {
	if v := os.Getenv("BIASLENS_JOBS_SECRET"); v != "" {
		c.Secret = v
	}
	if v := os.Getenv("BIASLENS_JOBS_SCHEDULE"); v != "" {
		c.Schedule = v
	}
	if v := os.Getenv("BIASLENS_JOBS_ARCHIVE_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ArchiveBatchSize = n
		}
	}
	if v := os.Getenv("BIASLENS_JOBS_ARCHIVE_MAX_AGE"); v != "" {
		c.ArchiveMaxAge = v
	}
	if v := os.Getenv("BIASLENS_JOBS_ANALYSIS_DELAY"); v != "" {
		c.AnalysisDelay = v
	}
	if v := os.Getenv("BIASLENS_JOBS_RUN_TIMEOUT"); v != "" {
		c.RunTimeout = v
	}
}

func (c *JobsConfig) validate() error {
	if c.ArchiveBatchSize < 1 {
		return fmt.Errorf("archive_batch_size must be positive")
	}
	if _, err := time.ParseDuration(c.ArchiveMaxAge); err != nil {
		return fmt.Errorf("invalid archive_max_age: %w", err)
	}
	if _, err := time.ParseDuration(c.AnalysisDelay); err != nil {
		return fmt.Errorf("invalid analysis_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.RunTimeout); err != nil {
		return fmt.Errorf("invalid run_timeout: %w", err)
	}
	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return fmt.Errorf("invalid schedule: %w", err)
		}
	}
	return nil
}
