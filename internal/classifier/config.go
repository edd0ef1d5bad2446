package classifier

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Gemini API parameters.
type Config struct {
	APIKey          string  `toml:"api_key"`
	Model           string  `toml:"model"`
	Temperature     float64 `toml:"temperature"`
	TopP            float64 `toml:"top_p"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
	RequestTimeout  string  `toml:"request_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey          string
	Model           string
	Temperature     string
	TopP            string
	MaxOutputTokens string
	RequestTimeout  string
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *Config) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.TopP != 0 {
		c.TopP = overlay.TopP
	}
	if overlay.MaxOutputTokens != 0 {
		c.MaxOutputTokens = overlay.MaxOutputTokens
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.0-flash-exp"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.TopP == 0 {
		c.TopP = 0.8
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = 1024
	}
	if c.RequestTimeout == "" {
		c.RequestTimeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Temperature != "" {
		if v := os.Getenv(env.Temperature); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Temperature = f
			}
		}
	}
	if env.TopP != "" {
		if v := os.Getenv(env.TopP); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.TopP = f
			}
		}
	}
	if env.MaxOutputTokens != "" {
		if v := os.Getenv(env.MaxOutputTokens); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxOutputTokens = n
			}
		}
	}
	if env.RequestTimeout != "" {
		if v := os.Getenv(env.RequestTimeout); v != "" {
			c.RequestTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid temperature: %v", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("invalid top_p: %v", c.TopP)
	}
	if c.MaxOutputTokens < 1 {
		return fmt.Errorf("invalid max_output_tokens: %d", c.MaxOutputTokens)
	}
	if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid request_timeout: %s", c.RequestTimeout)
	}
	return nil
}
