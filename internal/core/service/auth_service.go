package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
)

// Issuer is the `iss` claim stamped on every token this service mints.
const Issuer = "techhive-users-api"

// TokenClaims is the claim set carried by issued tokens. Subject holds the
// user id; Email and Role let the authenticator re-resolve the account.
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements login, token minting and revocation.
type AuthService struct {
	registry  *CredentialRegistry
	users     ports.UserRepository
	revoker   ports.TokenRevoker
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(registry *CredentialRegistry, users ports.UserRepository, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		registry:  registry,
		users:     users,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Login verifies the credential pair and mints a signed token. A missing
// field fails with MissingCredentials before any verification runs.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	if !s.registry.Verify(email, password) {
		s.logger.Warn().Str("email", email).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Registered credential without a live account; treat as invalid.
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("token mint failed")
		return nil, domain.ErrInternal
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user,
	}, nil
}

// Revoke blacklists the token for the rest of its validity window. The token
// is decoded without verification only to bound the blacklist entry's
// lifetime; an unparsable token is simply kept for the maximum TTL.
func (s *AuthService) Revoke(ctx context.Context, token string) error {
	expiresAt := time.Now().Add(s.tokenTTL)
	var claims TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return s.revoker.Revoke(ctx, token, expiresAt)
}

func (s *AuthService) mintToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
