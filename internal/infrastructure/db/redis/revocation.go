package redis

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore is a Redis-backed token blacklist, selected when a Redis
// address is configured. Unlike the in-memory set, entries expire with the
// token itself, so the blacklist cannot grow unbounded.
// Key format: revoked:<sha256 of token>
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func (s *RevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; the authenticator rejects it anyway.
		return nil
	}
	if err := s.client.Set(ctx, key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func key(token string) string {
	return fmt.Sprintf("revoked:%x", sha256.Sum256([]byte(token)))
}
