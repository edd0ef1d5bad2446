// Package cache provides a best-effort volatile key-value tier backed by Redis.
// All I/O failures degrade to cache misses or dropped writes; callers never
// receive an error from this tier.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veracity-io/veracity/pkg/lifecycle"
)

// System manages volatile cache operations and lifecycle coordination.
type System interface {
	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
	// Get returns the value stored at key. A connection failure, a missing
	// key, and an expired key are all reported as a miss.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Put stores value at key with the given expiry, overwriting any prior
	// value. Failures are logged and dropped.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Delete removes the value stored at key. Failures are logged and dropped.
	Delete(ctx context.Context, key string)
	// EntryTTL returns the configured default expiry for cache entries.
	EntryTTL() time.Duration
}

type store struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a cache system from the given configuration. The client is
// constructed immediately but no connection is attempted until Start.
func New(cfg *Config, logger *slog.Logger) System {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		DB:           cfg.DB,
		Password:     cfg.Password,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeoutDuration(),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
	})

	return &store{
		client: client,
		logger: logger.With("system", "cache"),
		ttl:    cfg.EntryTTLDuration(),
	}
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		pingCtx, cancel := context.WithTimeout(lc.Context(), 5*time.Second)
		defer cancel()

		if err := s.client.Ping(pingCtx).Err(); err != nil {
			// The volatile tier is best-effort; a dead cache at startup
			// degrades reads to the durable tier instead of failing boot.
			s.logger.Error("cache ping failed", "error", err)
			return
		}

		s.logger.Info("cache connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := s.client.Close(); err != nil {
			s.logger.Error("cache close failed", "error", err)
			return
		}

		s.logger.Info("cache connection closed")
	})

	return nil
}

func (s *store) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (s *store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		s.logger.Error("cache put failed", "key", key, "error", err)
	}
}

func (s *store) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("cache delete failed", "key", key, "error", err)
	}
}

func (s *store) EntryTTL() time.Duration {
	return s.ttl
}
