// Package config loads and finalizes the service configuration from TOML
// files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/veracity-io/veracity/internal/classifier"
	"github.com/veracity-io/veracity/pkg/cache"
	"github.com/veracity-io/veracity/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvVeracityEnv             = "VERACITY_ENV"
	EnvVeracityShutdownTimeout = "VERACITY_SHUTDOWN_TIMEOUT"
	EnvVeracityVersion         = "VERACITY_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "VERACITY_DB_HOST",
	Port:            "VERACITY_DB_PORT",
	Name:            "VERACITY_DB_NAME",
	User:            "VERACITY_DB_USER",
	Password:        "VERACITY_DB_PASSWORD",
	SSLMode:         "VERACITY_DB_SSL_MODE",
	MaxOpenConns:    "VERACITY_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "VERACITY_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "VERACITY_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "VERACITY_DB_CONN_TIMEOUT",
}

var cacheEnv = &cache.Env{
	Host:         "VERACITY_CACHE_HOST",
	Port:         "VERACITY_CACHE_PORT",
	DB:           "VERACITY_CACHE_DB",
	Password:     "VERACITY_CACHE_PASSWORD",
	EntryTTL:     "VERACITY_CACHE_ENTRY_TTL",
	PoolSize:     "VERACITY_CACHE_POOL_SIZE",
	MinIdleConns: "VERACITY_CACHE_MIN_IDLE_CONNS",
	DialTimeout:  "VERACITY_CACHE_DIAL_TIMEOUT",
	ReadTimeout:  "VERACITY_CACHE_READ_TIMEOUT",
	WriteTimeout: "VERACITY_CACHE_WRITE_TIMEOUT",
}

var classifierEnv = &classifier.Env{
	APIKey:          "VERACITY_CLASSIFIER_API_KEY",
	Model:           "VERACITY_CLASSIFIER_MODEL",
	Temperature:     "VERACITY_CLASSIFIER_TEMPERATURE",
	TopP:            "VERACITY_CLASSIFIER_TOP_P",
	MaxOutputTokens: "VERACITY_CLASSIFIER_MAX_OUTPUT_TOKENS",
	RequestTimeout:  "VERACITY_CLASSIFIER_REQUEST_TIMEOUT",
}

// Config is the root configuration for the veracity service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Cache           cache.Config      `toml:"cache"`
	Classifier      classifier.Config `toml:"classifier"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the VERACITY_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvVeracityEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
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

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Cache.Merge(&overlay.Cache)
	c.Classifier.Merge(&overlay.Classifier)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
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
	if err := c.Cache.Finalize(cacheEnv); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Classifier.Finalize(classifierEnv); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
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
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvVeracityShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVeracityVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvVeracityEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
