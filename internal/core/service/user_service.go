package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
)

// UserService implements CRUD orchestration and the query engine on top of
// the repository contract.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create inserts a new user. The payload has already passed shape validation;
// email uniqueness is enforced atomically by the repository.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Age:      input.Age,
		Role:     role,
		IsActive: true,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies the provided fields to an existing record. Omitted fields
// are unchanged; ID and CreatedAt are immutable.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		current.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		current.Email = strings.TrimSpace(*input.Email)
	}
	if input.Age != nil {
		current.Age = *input.Age
	}
	if input.Role != nil {
		current.Role = *input.Role
	}
	if input.IsActive != nil {
		current.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, id, current)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// ToggleStatus flips the active flag and nothing else. Applying it twice
// restores the original record.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.IsActive = !current.IsActive
	return s.repo.Update(ctx, id, current)
}

// List applies the filters conjunctively over the store in insertion order.
// Age bounds are validated before any filtering happens.
func (s *UserService) List(ctx context.Context, filters ports.UserFilters) ([]*domain.User, error) {
	if err := validateAgeRange(filters.MinAge, filters.MaxAge); err != nil {
		return nil, err
	}

	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filters.Search))
	out := make([]*domain.User, 0, len(users))
	for _, u := range users {
		if filters.ActiveOnly != nil && u.IsActive != *filters.ActiveOnly {
			continue
		}
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		if filters.MinAge != nil && u.Age < *filters.MinAge {
			continue
		}
		if filters.MaxAge != nil && u.Age > *filters.MaxAge {
			continue
		}
		if term != "" && !matchesTerm(u, term) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// Search matches the term case-insensitively against name or email. A blank
// term returns an empty result rather than the whole store.
func (s *UserService) Search(ctx context.Context, term string) ([]*domain.User, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []*domain.User{}, nil
	}

	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.User, 0)
	for _, u := range users {
		if matchesTerm(u, term) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) ByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	r := role
	return s.List(ctx, ports.UserFilters{Role: &r})
}

// Stats recomputes the aggregate from the live store on every call. Only
// roles actually present appear in ByRole; average age is 0 on an empty store.
func (s *UserService) Stats(ctx context.Context) (*ports.UserStats, error) {
	users, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.UserStats{
		Total:  len(users),
		ByRole: make(map[domain.Role]int),
	}

	ageSum := 0
	for _, u := range users {
		if u.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByRole[u.Role]++
		ageSum += u.Age
	}

	if stats.Total > 0 {
		stats.AverageAge = math.Round(float64(ageSum)/float64(stats.Total)*100) / 100
	}
	return stats, nil
}

func matchesTerm(u *domain.User, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(u.Name), lowerTerm) ||
		strings.Contains(strings.ToLower(u.Email), lowerTerm)
}

func validateAgeRange(minAge, maxAge *int) error {
	if minAge != nil && *minAge < 0 {
		return domain.NewInvalidRange("minAge must be a non-negative integer")
	}
	if maxAge != nil && *maxAge < 0 {
		return domain.NewInvalidRange("maxAge must be a non-negative integer")
	}
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return domain.NewInvalidRange(fmt.Sprintf("minAge (%d) must not exceed maxAge (%d)", *minAge, *maxAge))
	}
	return nil
}
