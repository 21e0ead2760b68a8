package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/biaslens/pkg/database"
	"github.com/JaimeStill/biaslens/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBiaslensEnv             = "BIASLENS_ENV"
	EnvBiaslensShutdownTimeout = "BIASLENS_SHUTDOWN_TIMEOUT"
	EnvBiaslensVersion         = "BIASLENS_VERSION"
	EnvBiaslensLogLevel        = "BIASLENS_LOG_LEVEL"
)

var databaseEnv = &database.Env{
	DSN:             "BIASLENS_DB_DSN",
	Host:            "BIASLENS_DB_HOST",
	Port:            "BIASLENS_DB_PORT",
	Name:            "BIASLENS_DB_NAME",
	User:            "BIASLENS_DB_USER",
	Password:        "BIASLENS_DB_PASSWORD",
	SSLMode:         "BIASLENS_DB_SSL_MODE",
	ApplicationName: "BIASLENS_DB_APPLICATION_NAME",
	MaxOpenConns:    "BIASLENS_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BIASLENS_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BIASLENS_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BIASLENS_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Enabled:          "BIASLENS_STORAGE_ENABLED",
	ContainerName:    "BIASLENS_STORAGE_CONTAINER_NAME",
	ConnectionString: "BIASLENS_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the biaslens service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Extractor       ExtractorConfig `toml:"extractor"`
	Providers       ProvidersConfig `toml:"providers"`
	News            NewsConfig      `toml:"news"`
	Jobs            JobsConfig      `toml:"jobs"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	LogLevel        string          `toml:"log_level"`
}

// Env returns the BIASLENS_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBiaslensEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML data into a Config without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Extractor.Merge(&overlay.Extractor)
	c.Providers.Merge(&overlay.Providers)
	c.News.Merge(&overlay.News)
	c.Jobs.Merge(&overlay.Jobs)
}

// Finalize applies defaults, environment overrides, and validation to every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Extractor.Finalize(); err != nil {
		return fmt.Errorf("extractor: %w", err)
	}
	if err := c.Providers.Finalize(); err != nil {
		return fmt.Errorf("providers: %w", err)
	}
	if err := c.News.Finalize(); err != nil {
		return fmt.Errorf("news: %w", err)
	}
	if err := c.Jobs.Finalize(); err != nil {
		return fmt.Errorf("jobs: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBiaslensShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBiaslensVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvBiaslensLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath() string {
	if env := os.Getenv(EnvBiaslensEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
