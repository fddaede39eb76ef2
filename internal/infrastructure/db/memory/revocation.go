package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore is the default process-lifetime token blacklist. Entries
// are never evicted; the set only lives as long as the process and tokens
// expire within 24 hours, so growth is bounded by login volume.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // token -> expiry, kept for observability
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time)}
}

func (s *RevocationStore) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = expiresAt
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[token]
	return ok, nil
}
