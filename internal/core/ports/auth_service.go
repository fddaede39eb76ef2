package ports

import (
	"context"
	"time"

	"github.com/techhive/users-api/internal/core/domain"
)

// LoginResult is what a successful login returns to the transport layer.
type LoginResult struct {
	Token     string
	TokenType string
	ExpiresIn int64 // seconds
	User      *domain.User
}

// AuthService authenticates credentials and manages issued tokens.
type AuthService interface {
	// Login verifies an email/password pair against the credential registry
	// and mints a signed, time-bounded token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Revoke blacklists a previously issued token for the rest of its lifetime.
	Revoke(ctx context.Context, token string) error
	TokenTTL() time.Duration
}

// TokenRevoker is the revocation set consulted on every authenticated request.
// Implementations: process-lifetime in-memory set, or Redis-backed when a
// shared set across restarts is wanted.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
