package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/api/metrics"
	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
	"github.com/techhive/users-api/internal/core/service"
)

// PrincipalKey is the echo context key under which the authenticated
// principal is stored.
const PrincipalKey = "principal"

const (
	headerAPIKey      = "x-api-key"
	headerAccessToken = "x-access-token"
)

// jwtNow is swappable in tests to pin expiry checks.
var jwtNow = time.Now

// AuthConfig wires the authenticator's collaborators. Everything is injected
// so tests can build isolated instances.
type AuthConfig struct {
	JWTSecret string
	// APIKey is the static shared key; empty disables shared-key auth.
	APIKey  string
	Users   ports.UserRepository
	Revoker ports.TokenRevoker
}

// Authenticate resolves the request's credentials into a Principal, or
// rejects with a stable 401 code. Checks run in a fixed order:
//
//	shared key > bearer format > revocation > signature > not-before >
//	claim completeness > live subject > expiry
//
// A presented shared key is terminal: a mismatch never falls through to the
// bearer-token path.
func Authenticate(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := resolvePrincipal(cfg, c)
			if err != nil {
				var de *domain.Error
				if errors.As(err, &de) {
					metrics.AuthFailuresTotal.WithLabelValues(de.Code).Inc()
				}
				return err
			}
			c.Set(PrincipalKey, p)
			return next(c)
		}
	}
}

func resolvePrincipal(cfg AuthConfig, c echo.Context) (*domain.Principal, error) {
	// Shared key has the highest precedence, even when a bearer token is
	// also present.
	if apiKey := c.Request().Header.Get(headerAPIKey); apiKey != "" {
		if cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(cfg.APIKey)) != 1 {
			return nil, domain.ErrInvalidAPIKey
		}
		return &domain.Principal{
			Role: domain.RoleAdmin,
			Kind: domain.CredentialSharedKey,
		}, nil
	}

	token := bearerToken(c)
	if token == "" {
		return nil, domain.ErrTokenRequired
	}

	if !wellFormed(token) {
		return nil, domain.ErrInvalidTokenFormat
	}

	revoked, err := cfg.Revoker.IsRevoked(c.Request().Context(), token)
	if err != nil {
		return nil, domain.ErrInternal
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	// Claim validation is done by hand below so each failure keeps its own
	// code and the live-subject check runs before the expiry check.
	claims := &service.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidTokenSignature
	}

	now := jwtNow()
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return nil, domain.ErrTokenNotYetValid
	}

	role, roleOK := domain.ParseRole(claims.Role)
	if claims.Subject == "" || claims.Email == "" || !roleOK {
		return nil, domain.ErrInvalidTokenPayload
	}

	// Re-resolve the subject so stale tokens for deleted or re-keyed
	// accounts are rejected even though they still verify.
	user, err := cfg.Users.FindByID(c.Request().Context(), claims.Subject)
	if err != nil || !strings.EqualFold(user.Email, claims.Email) {
		return nil, domain.ErrTokenUserNotFound
	}

	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return nil, domain.ErrTokenExpired
	}

	p := &domain.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   role,
		Kind:   domain.CredentialSignedToken,
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	p.ExpiresAt = claims.ExpiresAt.Time
	return p, nil
}

// bearerToken extracts the raw token from the Authorization header or the
// alternate x-access-token header.
func bearerToken(c echo.Context) string {
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Request().Header.Get(headerAccessToken))
}

// wellFormed checks the structural shape only: three non-empty dot-separated
// segments.
func wellFormed(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
