package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore keeps the latest refresh token per user in Redis.
// Key format: refresh_token:<user_id>, expiring with the token itself.
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a RefreshTokenStore wrapping the given client.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

func (s *RefreshTokenStore) Save(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Lookup returns the stored token, or "" when none is recorded.
func (s *RefreshTokenStore) Lookup(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	return token, nil
}

func (s *RefreshTokenStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) key(userID string) string {
	return "refresh_token:" + userID
}
