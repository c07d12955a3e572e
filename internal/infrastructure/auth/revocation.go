package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/carobar/backend/internal/domain/shared"
)

const revokedKeyPrefix = "token:revoked:"

// Revocations invalidates tokens before they expire, as on logout.
// Entries live in the shared cache only for the token's remaining lifetime.
type Revocations struct {
	cache shared.Cache
}

// NewRevocations creates a revocation list over cache. A nil cache disables revocation.
func NewRevocations(cache shared.Cache) *Revocations {
	return &Revocations{cache: cache}
}

// Revoke marks the token identified by jti as revoked for ttl
func (r *Revocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if r == nil || r.cache == nil || jti == "" || ttl <= 0 {
		return nil
	}
	if err := r.cache.Set(ctx, revokedKeyPrefix+jti, []byte("1"), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked
func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r == nil || r.cache == nil || jti == "" {
		return false, nil
	}
	_, found, err := r.cache.Get(ctx, revokedKeyPrefix+jti)
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return found, nil
}
