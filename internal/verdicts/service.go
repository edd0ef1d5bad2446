package verdicts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/veracity-io/veracity/pkg/pagination"
)

type service struct {
	store      DurableStore
	volatile   VolatileCache
	classifier Classifier
	flight     singleflight.Group
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a verdict service implementing the System interface.
// Both cache tiers and the classifier are injected so tests can substitute
// in-memory fakes.
func New(
	store DurableStore,
	volatile VolatileCache,
	classifier Classifier,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &service{
		store:      store,
		volatile:   volatile,
		classifier: classifier,
		logger:     logger.With("system", "verdicts"),
		pagination: pagination,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *service) Classify(ctx context.Context, cmd ClassifyCommand) (*Verdict, error) {
	if v, ok := s.volatile.Get(ctx, cmd.Hash); ok {
		return v, nil
	}

	v, err := s.store.Find(ctx, cmd.Hash)
	switch {
	case err == nil:
		s.volatile.Put(ctx, v)
		return v, nil
	case !errors.Is(err, ErrNotFound):
		// A durable read failure is not a miss; classifying here would
		// reclassify without bound whenever the store is degraded.
		return nil, fmt.Errorf("read verdict %s: %w", cmd.Hash, err)
	}

	// Double miss. Concurrent callers for the same hash share a single
	// in-flight classification; the durable put stays idempotent so the
	// race is harmless even without this.
	result, err, _ := s.flight.Do(cmd.Hash, func() (any, error) {
		return s.classify(ctx, cmd)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Verdict), nil
}

func (s *service) classify(ctx context.Context, cmd ClassifyCommand) (*Verdict, error) {
	raw, err := s.classifier.Generate(ctx, cmd.Hash, cmd.Expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassifier, err)
	}

	badge, details := Parse(raw)

	canonical, err := s.store.Put(ctx, &Verdict{
		Hash:      cmd.Hash,
		Badge:     badge,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("write verdict %s: %w", cmd.Hash, err)
	}

	// Durable truth is established; the volatile write may silently fail.
	s.volatile.Put(ctx, canonical)

	s.logger.Info("hash classified",
		"hash", canonical.Hash,
		"badge", canonical.Badge,
	)
	return canonical, nil
}

func (s *service) Find(ctx context.Context, hash string) (*Verdict, error) {
	if v, ok := s.volatile.Get(ctx, hash); ok {
		return v, nil
	}

	v, err := s.store.Find(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.volatile.Put(ctx, v)
	return v, nil
}

func (s *service) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Verdict], error) {
	page.Normalize(s.pagination)
	return s.store.List(ctx, page, filters)
}

func (s *service) Delete(ctx context.Context, hash string) error {
	if err := s.store.Delete(ctx, hash); err != nil {
		return err
	}

	s.volatile.Delete(ctx, hash)

	s.logger.Info("verdict invalidated", "hash", hash)
	return nil
}
