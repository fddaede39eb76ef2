package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/core/domain"
)

// Principal returns the authenticated principal set by Authenticate, or nil
// when the request carries none.
func Principal(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}

// RequireRoles enforces role-based access control. An empty role list means
// any authenticated principal is allowed. A denial names both the required
// roles and the caller's actual role.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal(c)
			if p == nil {
				return domain.ErrAuthRequired
			}
			if len(allowedSet) > 0 {
				if _, ok := allowedSet[p.Role]; !ok {
					return domain.NewInsufficientPermissions(allowed, p.Role)
				}
			}
			return next(c)
		}
	}
}
