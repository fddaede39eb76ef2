// Package memory provides the in-process implementations of the storage
// contracts: the user store and the default token revocation set. Records
// live for the lifetime of the process; there is no persistence.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/techhive/users-api/internal/core/domain"
)

// UserRepository is a mutex-guarded map keyed by id, with a secondary
// lowercase-email index for O(1) duplicate checks. The uniqueness check and
// the insert run under one write lock, so concurrent creates with the same
// email cannot both succeed.
type UserRepository struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	order    []string          // insertion order of ids
	emailIdx map[string]string // lowercase email -> id
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:    make(map[string]*domain.User),
		emailIdx: make(map[string]string),
	}
}

// Seed loads records verbatim, preserving their ids and timestamps. Used for
// the demo dataset and tests; duplicate emails in the seed fail like inserts.
func (r *UserRepository) Seed(users []domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range users {
		u := users[i]
		key := strings.ToLower(u.Email)
		if _, exists := r.emailIdx[key]; exists {
			return domain.ErrDuplicateEmail
		}
		r.users[u.ID] = u.Clone()
		r.order = append(r.order, u.ID)
		r.emailIdx[key] = u.ID
	}
	return nil
}

func (r *UserRepository) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.emailIdx[key]; exists {
		return nil, domain.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	stored := user.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.users[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	r.emailIdx[key] = stored.ID

	return stored.Clone(), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIdx[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *UserRepository) Update(_ context.Context, id string, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	newKey := strings.ToLower(user.Email)
	oldKey := strings.ToLower(current.Email)
	if newKey != oldKey {
		if _, taken := r.emailIdx[newKey]; taken {
			return nil, domain.ErrDuplicateEmail
		}
		delete(r.emailIdx, oldKey)
		r.emailIdx[newKey] = id
	}

	stored := user.Clone()
	stored.ID = current.ID
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now().UTC()

	r.users[id] = stored
	return stored.Clone(), nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}

	delete(r.users, id)
	delete(r.emailIdx, strings.ToLower(current.Email))
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *UserRepository) All(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id].Clone())
	}
	return out, nil
}
