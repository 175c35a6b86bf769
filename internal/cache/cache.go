package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a read-through byte cache with per-entry TTL. Implementations
// treat every failure as a miss; callers cannot distinguish the two and must
// not need to.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Key joins the logical request coordinates into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Nop is a Cache that stores nothing. Used when caching is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)         { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
