package ports

import (
	"context"

	"github.com/techhive/users-api/internal/core/domain"
)

// UserRepository defines the storage contract for user records.
//
// Insert assigns a freshly generated identifier and timestamps, and must
// re-check email uniqueness (case-insensitive) atomically with the insert
// so two concurrent creates with the same email cannot both pass.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update replaces the mutable fields of the record with the given id.
	// ID and CreatedAt are preserved; UpdatedAt is refreshed.
	Update(ctx context.Context, id string, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// All returns a snapshot of every record in insertion order.
	All(ctx context.Context) ([]*domain.User, error)
}
