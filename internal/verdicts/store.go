package verdicts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/veracity-io/veracity/pkg/pagination"
	"github.com/veracity-io/veracity/pkg/query"
	"github.com/veracity-io/veracity/pkg/repository"
)

// DurableStore is the authoritative verdict tier. A hash present here holds
// the canonical record; reads and writes that fail are hard errors.
type DurableStore interface {
	Find(ctx context.Context, hash string) (*Verdict, error)
	// Put stores v unless a record already exists for the hash, and returns
	// the canonical record either way. Writing the same hash twice is a
	// no-op the second time; first writer wins.
	Put(ctx context.Context, v *Verdict) (*Verdict, error)
	Delete(ctx context.Context, hash string) error
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Verdict], error)
}

// Store implements DurableStore over PostgreSQL.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates a PostgreSQL-backed durable store.
func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With("system", "verdict-store"),
	}
}

func (s *Store) Find(ctx context.Context, hash string) (*Verdict, error) {
	q, args := query.NewBuilder(projection).BuildSingle("Hash", hash)

	v, err := repository.QueryOne(ctx, s.db, q, args, scanVerdict)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (s *Store) Put(ctx context.Context, v *Verdict) (*Verdict, error) {
	putQ := `
		INSERT INTO verdicts(hash, badge, details, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hash) DO NOTHING
		RETURNING hash, badge, details, created_at`

	putArgs := []any{v.Hash, string(v.Badge), v.Details, v.CreatedAt}

	stored, err := repository.QueryOne(ctx, s.db, putQ, putArgs, scanVerdict)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict: another writer got here first. The existing record
			// is canonical.
			return s.Find(ctx, v.Hash)
		}
		return nil, fmt.Errorf("put verdict %s: %w", v.Hash, err)
	}

	return &stored, nil
}

func (s *Store) Delete(ctx context.Context, hash string) error {
	err := repository.ExecExpectOne(
		ctx, s.db,
		"DELETE FROM verdicts WHERE hash = $1",
		hash,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	s.logger.Info("verdict deleted", "hash", hash)
	return nil
}

func (s *Store) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Verdict], error) {
	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Hash", "Details")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count verdicts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, s.db, pageSQL, pageArgs, scanVerdict)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}
