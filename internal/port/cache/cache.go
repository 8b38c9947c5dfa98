// Package cache is the port for short-lived key-value storage, used to
// keep verified session identities out of the hot token-verification path.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with a per-entry TTL.
// Get reports a miss with the second return value, not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
