package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/biaslens/pkg/formatting"
)

// ExtractorConfig holds article fetch parameters.
type ExtractorConfig struct {
	Timeout     string `toml:"timeout"`
	MaxBodySize string `toml:"max_body_size"`
	UserAgent   string `toml:"user_agent"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ExtractorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxBodySizeBytes returns MaxBodySize in bytes.
func (c *ExtractorConfig) MaxBodySizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxBodySize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExtractorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ExtractorConfig) Merge(overlay *ExtractorConfig) {
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}
	if overlay.UserAgent != "" {
		c.UserAgent = overlay.UserAgent
	}
}

func (c *ExtractorConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "5MB"
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; biaslens/1.0)"
	}
}

func (c *ExtractorConfig) loadEnv() {
	if v := os.Getenv("BIASLENS_EXTRACTOR_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("BIASLENS_EXTRACTOR_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv("BIASLENS_EXTRACTOR_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
}

func (c *ExtractorConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if n, err := formatting.ParseBytes(c.MaxBodySize); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_body_size: %q", c.MaxBodySize)
	}
	return nil
}
