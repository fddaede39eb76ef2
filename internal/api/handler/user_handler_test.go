package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
)

type stubUserService struct {
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	searchFn func(ctx context.Context, term string) ([]*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(context.Context, string, ports.UpdateUserInput) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUserService) Delete(context.Context, string) error { return nil }

func (s *stubUserService) ToggleStatus(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUserService) List(context.Context, ports.UserFilters) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Search(ctx context.Context, term string) ([]*domain.User, error) {
	return s.searchFn(ctx, term)
}

func (s *stubUserService) ByRole(context.Context, domain.Role) ([]*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) Stats(context.Context) (*ports.UserStats, error) { return nil, nil }

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Create_Success(t *testing.T) {
	svc := &stubUserService{
		createFn: func(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.Name != "Ada Admin" || input.Email != "ada@techhive.com" || input.Age != 30 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: "x", Name: input.Name, Email: input.Email, Age: input.Age, Role: domain.RoleUser, IsActive: true}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := newContext(t, http.MethodPost, "/users", `{"name":"Ada Admin","email":"ada@techhive.com","age":30}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_ReportsAllViolations(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	c, _ := newContext(t, http.MethodPost, "/users", `{"name":"A","email":"bad","age":200}`)
	err := h.Create(c)

	var de *domain.Error
	if !errors.As(err, &de) || de.Code != domain.CodeValidationError {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msgs, _ := de.Data["errors"].([]string)
	if len(msgs) != 3 {
		t.Fatalf("expected all 3 violations reported, got %v", msgs)
	}
}

func TestUserHandler_Create_InvalidJSON(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newContext(t, http.MethodPost, "/users", `{"name":`)
	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidJSON) {
		t.Fatalf("expected InvalidJson, got %v", err)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	})

	c, _ := newContext(t, http.MethodGet, "/users/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUserHandler_Get_BlankID(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newContext(t, http.MethodGet, "/users/%20", "")
	c.SetParamNames("id")
	c.SetParamValues("   ")
	if err := h.Get(c); !errors.Is(err, domain.ErrMissingIdentifier) {
		t.Fatalf("expected MissingIdentifier, got %v", err)
	}
}

func TestUserHandler_Search_BlankQuery(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		searchFn: func(context.Context, string) ([]*domain.User, error) {
			t.Fatalf("service must not be called on blank query")
			return nil, nil
		},
	})

	for _, target := range []string{"/users/search", "/users/search?q=%20%20"} {
		c, _ := newContext(t, http.MethodGet, target, "")
		err := h.Search(c)
		var de *domain.Error
		if !errors.As(err, &de) || de.Code != domain.CodeValidationError {
			t.Fatalf("expected ValidationError for %s, got %v", target, err)
		}
	}
}

func TestUserHandler_AgeRange_NonNumeric(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newContext(t, http.MethodGet, "/users/age?minAge=abc", "")
	err := h.AgeRange(c)
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != domain.CodeInvalidRange {
		t.Fatalf("expected InvalidRange, got %v", err)
	}
}

func TestUserHandler_ByRole_InvalidLiteral(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newContext(t, http.MethodGet, "/users/role/superuser", "")
	c.SetParamNames("role")
	c.SetParamValues("superuser")
	err := h.ByRole(c)
	var de *domain.Error
	if !errors.As(err, &de) || de.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid role literal, got %v", err)
	}
}
