package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/veracity-io/veracity/pkg/middleware"
	"github.com/veracity-io/veracity/pkg/pagination"
)

const EnvAPIBasePath = "VERACITY_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "VERACITY_CORS_ENABLED",
	Origins:          "VERACITY_CORS_ORIGINS",
	AllowedMethods:   "VERACITY_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "VERACITY_CORS_ALLOWED_HEADERS",
	AllowCredentials: "VERACITY_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "VERACITY_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "VERACITY_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "VERACITY_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds the HTTP API surface settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /: %s", c.BasePath)
	}
	return nil
}
