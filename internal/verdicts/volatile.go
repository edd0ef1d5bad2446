package verdicts

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/veracity-io/veracity/pkg/cache"
)

const volatileKeyPrefix = "verdict:"

// VolatileCache is the fast verdict tier consulted before the durable store.
// It is best-effort: every operation degrades to a miss or no-op on failure,
// so callers never handle errors from this tier.
type VolatileCache interface {
	Get(ctx context.Context, hash string) (*Verdict, bool)
	Put(ctx context.Context, v *Verdict)
	Delete(ctx context.Context, hash string)
}

type volatileCache struct {
	tier   cache.System
	logger *slog.Logger
}

// NewVolatileCache creates a VolatileCache that stores JSON-encoded verdicts
// in the given cache tier using its configured entry TTL.
func NewVolatileCache(tier cache.System, logger *slog.Logger) VolatileCache {
	return &volatileCache{
		tier:   tier,
		logger: logger.With("system", "verdict-cache"),
	}
}

func (c *volatileCache) Get(ctx context.Context, hash string) (*Verdict, bool) {
	data, ok := c.tier.Get(ctx, volatileKeyPrefix+hash)
	if !ok {
		return nil, false
	}

	var v Verdict
	if err := json.Unmarshal(data, &v); err != nil {
		// A corrupt entry is a miss; the durable tier repopulates it.
		c.logger.Error("decode cached verdict failed", "hash", hash, "error", err)
		return nil, false
	}

	return &v, true
}

func (c *volatileCache) Put(ctx context.Context, v *Verdict) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("encode verdict failed", "hash", v.Hash, "error", err)
		return
	}

	c.tier.Put(ctx, volatileKeyPrefix+v.Hash, data, c.tier.EntryTTL())
}

func (c *volatileCache) Delete(ctx context.Context, hash string) {
	c.tier.Delete(ctx, volatileKeyPrefix+hash)
}
