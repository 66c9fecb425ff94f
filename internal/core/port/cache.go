package port

import (
	"context"
	"time"
)

// Cache is the distributed cache boundary. Get returns domain.ErrCacheMiss
// both for absent keys and for an unreachable backend; readers fall through
// to the repository either way. Invalidation is best-effort: errors are for
// logging, never for failing the write that triggered them.
//
//go:generate mockgen -source=cache.go -destination=mock/cache.go -package=mock
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// InvalidateKeys removes, for each pattern, the exact key and every key
	// sharing it as prefix. A trailing "*" marks a family pattern; it is
	// stripped before matching.
	InvalidateKeys(ctx context.Context, patterns []string) error
}
