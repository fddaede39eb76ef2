package handler

import "github.com/techhive/users-api/internal/core/domain"

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createUserRequest struct {
	Name  string  `json:"name"  validate:"required,min=2"`
	Email string  `json:"email" validate:"required,email"`
	Age   *int    `json:"age"   validate:"required,gte=0,lte=150"`
	Role  *string `json:"role"  validate:"omitempty,oneof=admin manager user"`
}

type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Age      *int    `json:"age"      validate:"omitempty,gte=0,lte=150"`
	Role     *string `json:"role"     validate:"omitempty,oneof=admin manager user"`
	IsActive *bool   `json:"isActive"`
}

// --- Response types ---

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *domain.User `json:"user"`
}

// listUsersResponse echoes the applied filters back alongside the page.
type listUsersResponse struct {
	Users   []*domain.User `json:"users"`
	Count   int            `json:"count"`
	Filters listFilters    `json:"filters"`
}

type listFilters struct {
	Active *bool   `json:"active,omitempty"`
	Role   *string `json:"role,omitempty"`
	MinAge *int    `json:"minAge,omitempty"`
	MaxAge *int    `json:"maxAge,omitempty"`
	Search string  `json:"search,omitempty"`
}

type searchUsersResponse struct {
	Users []*domain.User `json:"users"`
	Count int            `json:"count"`
	Query string         `json:"query"`
}
