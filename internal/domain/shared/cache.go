package shared

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value cache with per-entry expiry.
// Get reports found=false for missing or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
