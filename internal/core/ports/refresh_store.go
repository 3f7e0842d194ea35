package ports

import (
	"context"
	"time"
)

// RefreshTokenStore tracks the refresh token most recently issued to each
// user. A presented refresh token must still match the stored one; issuing a
// new pair or letting the TTL lapse invalidates older tokens.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID, token string, ttl time.Duration) error
	// Lookup returns the stored token, or "" when none is recorded.
	Lookup(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}
