package ports

import (
	"context"

	"github.com/techhive/users-api/internal/core/domain"
)

// CreateUserInput carries an already-validated create payload.
type CreateUserInput struct {
	Name  string
	Email string
	Age   int
	Role  domain.Role // defaults to "user" when empty
}

// UpdateUserInput carries a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Age      *int
	Role     *domain.Role
	IsActive *bool
}

// UserFilters describes a list query. All fields are optional; absence means
// "no constraint". Filters compose conjunctively.
type UserFilters struct {
	ActiveOnly *bool
	Role       *domain.Role
	MinAge     *int
	MaxAge     *int
	Search     string
}

// UserStats is a derived aggregate, recomputed from the live store on every
// call. AverageAge is rounded to 2 decimal places and is 0 for an empty store.
type UserStats struct {
	Total      int                 `json:"total"`
	Active     int                 `json:"active"`
	Inactive   int                 `json:"inactive"`
	ByRole     map[domain.Role]int `json:"byRole"`
	AverageAge float64             `json:"averageAge"`
}

// UserService is the application-facing surface for user CRUD and queries.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filters UserFilters) ([]*domain.User, error)
	Search(ctx context.Context, term string) ([]*domain.User, error)
	ByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Stats(ctx context.Context) (*UserStats, error)
}
