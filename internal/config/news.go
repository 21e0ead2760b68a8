package config

import (
	"fmt"
	"os"
	"time"

	"github.com/JaimeStill/biaslens/pkg/formatting"
)

// NewsConfig holds the news aggregation API client settings.
type NewsConfig struct {
	BaseURL         string `toml:"base_url"`
	APIKey          string `toml:"api_key"`
	Language        string `toml:"language"`
	RequestDelay    string `toml:"request_delay"`
	Timeout         string `toml:"timeout"`
	MaxResponseSize string `toml:"max_response_size"`
}

// RequestDelayDuration returns RequestDelay as a time.Duration.
func (c *NewsConfig) RequestDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestDelay)
	return d
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *NewsConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxResponseSizeBytes returns MaxResponseSize in bytes, or zero when unset.
func (c *NewsConfig) MaxResponseSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxResponseSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *NewsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *NewsConfig) Merge(overlay *NewsConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Language != "" {
		c.Language = overlay.Language
	}
	if overlay.RequestDelay != "" {
		c.RequestDelay = overlay.RequestDelay
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
}

func (c *NewsConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://newsdata.io/api/1/latest"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.RequestDelay == "" {
		c.RequestDelay = "1s"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "2MB"
	}
}

func (c *NewsConfig) loadEnv() {
	if v := os.Getenv("BIASLENS_NEWS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("BIASLENS_NEWS_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("BIASLENS_NEWS_LANGUAGE"); v != "" {
		c.Language = v
	}
	if v := os.Getenv("BIASLENS_NEWS_REQUEST_DELAY"); v != "" {
		c.RequestDelay = v
	}
	if v := os.Getenv("BIASLENS_NEWS_TIMEOUT"); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv("BIASLENS_NEWS_MAX_RESPONSE_SIZE"); v != "" {
		c.MaxResponseSize = v
	}
}

func (c *NewsConfig) validate() error {
	if _, err := time.ParseDuration(c.RequestDelay); err != nil {
		return fmt.Errorf("invalid request_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if n, err := formatting.ParseBytes(c.MaxResponseSize); err != nil || n <= 0 {
		return fmt.Errorf("invalid max_response_size: %q", c.MaxResponseSize)
	}
	return nil
}
