// Package infrastructure assembles the shared runtime systems that back the
// API: lifecycle coordination, logging, durable storage, the volatile cache
// tier, and the external classifier client.
package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/veracity-io/veracity/internal/classifier"
	"github.com/veracity-io/veracity/internal/config"
	"github.com/veracity-io/veracity/pkg/cache"
	"github.com/veracity-io/veracity/pkg/database"
	"github.com/veracity-io/veracity/pkg/lifecycle"
)

// Infrastructure holds the shared subsystems used across API modules.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Database   database.System
	Cache      cache.System
	Classifier classifier.System
}

// New constructs all infrastructure subsystems from configuration without
// establishing connections. Connections are made when Start is called.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		"service", "veracity",
		"version", cfg.Version,
	)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	cls, err := classifier.New(context.Background(), &cfg.Classifier, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize classifier: %w", err)
	}

	return &Infrastructure{
		Lifecycle:  lifecycle.New(),
		Logger:     logger,
		Database:   db,
		Cache:      cache.New(&cfg.Cache, logger),
		Classifier: cls,
	}, nil
}

// Start registers every subsystem with the lifecycle coordinator. Hooks run
// when the coordinator's startup wait begins.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start database: %w", err)
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start cache: %w", err)
	}
	if err := i.Classifier.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start classifier: %w", err)
	}
	return nil
}
