package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Redis connection parameters and the default entry expiry.
type Config struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	DB           int    `toml:"db"`
	Password     string `toml:"password"`
	EntryTTL     string `toml:"entry_ttl"`
	PoolSize     int    `toml:"pool_size"`
	MinIdleConns int    `toml:"min_idle_conns"`
	DialTimeout  string `toml:"dial_timeout"`
	ReadTimeout  string `toml:"read_timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Host         string
	Port         string
	DB           string
	Password     string
	EntryTTL     string
	PoolSize     string
	MinIdleConns string
	DialTimeout  string
	ReadTimeout  string
	WriteTimeout string
}

// Addr returns the host:port connection address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// EntryTTLDuration returns EntryTTL as a time.Duration.
func (c *Config) EntryTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.EntryTTL)
	return d
}

// DialTimeoutDuration returns DialTimeout as a time.Duration.
func (c *Config) DialTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DialTimeout)
	return d
}

// ReadTimeoutDuration returns ReadTimeout as a time.Duration.
func (c *Config) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns WriteTimeout as a time.Duration.
func (c *Config) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
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
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.DB != 0 {
		c.DB = overlay.DB
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.EntryTTL != "" {
		c.EntryTTL = overlay.EntryTTL
	}
	if overlay.PoolSize != 0 {
		c.PoolSize = overlay.PoolSize
	}
	if overlay.MinIdleConns != 0 {
		c.MinIdleConns = overlay.MinIdleConns
	}
	if overlay.DialTimeout != "" {
		c.DialTimeout = overlay.DialTimeout
	}
	if overlay.ReadTimeout != "" {
		c.ReadTimeout = overlay.ReadTimeout
	}
	if overlay.WriteTimeout != "" {
		c.WriteTimeout = overlay.WriteTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6379
	}
	if c.EntryTTL == "" {
		c.EntryTTL = "1h"
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 2
	}
	if c.DialTimeout == "" {
		c.DialTimeout = "5s"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "3s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "3s"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString(env.Host, &c.Host)
	setInt(env.Port, &c.Port)
	setInt(env.DB, &c.DB)
	setString(env.Password, &c.Password)
	setString(env.EntryTTL, &c.EntryTTL)
	setInt(env.PoolSize, &c.PoolSize)
	setInt(env.MinIdleConns, &c.MinIdleConns)
	setString(env.DialTimeout, &c.DialTimeout)
	setString(env.ReadTimeout, &c.ReadTimeout)
	setString(env.WriteTimeout, &c.WriteTimeout)
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if d, err := time.ParseDuration(c.EntryTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid entry_ttl: %s", c.EntryTTL)
	}
	if _, err := time.ParseDuration(c.DialTimeout); err != nil {
		return fmt.Errorf("invalid dial_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ReadTimeout); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.WriteTimeout); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	return nil
}

func setString(key string, target *string) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setInt(key string, target *int) {
	if key == "" {
		return
	}
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
