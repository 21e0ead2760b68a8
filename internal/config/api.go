package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/biaslens/pkg/formatting"
	"github.com/JaimeStill/biaslens/pkg/middleware"
	"github.com/JaimeStill/biaslens/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "BIASLENS_CORS_ENABLED",
	Origins:          "BIASLENS_CORS_ORIGINS",
	AllowedMethods:   "BIASLENS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "BIASLENS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "BIASLENS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "BIASLENS_CORS_MAX_AGE",
}

var paginationEnv = &pagination.Env{
	DefaultPageSize: "BIASLENS_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "BIASLENS_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, request limits, CORS, and pagination settings.
type APIConfig struct {
	BasePath       string                `toml:"base_path"`
	MaxRequestSize string                `toml:"max_request_size"`
	CORS           middleware.CORSConfig `toml:"cors"`
	Pagination     pagination.Config     `toml:"pagination"`
}

// MaxRequestSizeBytes returns MaxRequestSize in bytes.
func (c *APIConfig) MaxRequestSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxRequestSize)
	if err != nil {
		return 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxRequestSize); err != nil {
		return fmt.Errorf("invalid max_request_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxRequestSize != "" {
		c.MaxRequestSize = overlay.MaxRequestSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxRequestSize == "" {
		c.MaxRequestSize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("BIASLENS_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("BIASLENS_API_MAX_REQUEST_SIZE"); v != "" {
		c.MaxRequestSize = v
	}
}
