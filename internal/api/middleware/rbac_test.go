package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/core/domain"
)

func rbacContext(principal *domain.Principal) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(PrincipalKey, principal)
	}
	return c
}

func TestRequireRoles_Allows(t *testing.T) {
	c := rbacContext(&domain.Principal{Role: domain.RoleManager})

	called := false
	mw := RequireRoles(domain.RoleAdmin, domain.RoleManager)
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRoles_Forbids(t *testing.T) {
	c := rbacContext(&domain.Principal{Role: domain.RoleUser})

	mw := RequireRoles(domain.RoleAdmin, domain.RoleManager)
	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if de.Code != domain.CodeInsufficientPermissions || de.Status != http.StatusForbidden {
		t.Fatalf("unexpected error: %+v", de)
	}

	// The denial names both sides of the mismatch.
	required, _ := de.Data["requiredRoles"].([]string)
	if len(required) != 2 || required[0] != "admin" || required[1] != "manager" {
		t.Fatalf("unexpected required roles: %v", de.Data["requiredRoles"])
	}
	if de.Data["yourRole"] != "user" {
		t.Fatalf("unexpected caller role: %v", de.Data["yourRole"])
	}
}

func TestRequireRoles_NoPrincipal(t *testing.T) {
	c := rbacContext(nil)

	mw := RequireRoles(domain.RoleAdmin)
	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected AuthRequired, got %v", err)
	}
}

func TestRequireRoles_EmptySetAllowsAnyPrincipal(t *testing.T) {
	c := rbacContext(&domain.Principal{Role: domain.RoleUser})

	called := false
	mw := RequireRoles()
	if err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}
