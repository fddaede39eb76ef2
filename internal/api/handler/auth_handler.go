package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/api/metrics"
	"github.com/techhive/users-api/internal/core/domain"
	"github.com/techhive/users-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an email/password pair and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope{data=loginResponse}
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidJSON
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			metrics.LoginsTotal.WithLabelValues("missing_credentials").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return Respond(c, http.StatusOK, loginResponse{
		Token:     result.Token,
		TokenType: result.TokenType,
		ExpiresIn: result.ExpiresIn,
		User:      result.User,
	}, "login successful")
}

// Logout revokes the presented bearer token for the rest of its lifetime.
// Shared-key callers have nothing to revoke and get a 400.
//
// @Summary      Logout (revoke the presented token)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      400  {object}  Envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := presentedToken(c)
	if token == "" {
		return &domain.Error{
			Code:    domain.CodeValidationError,
			Status:  http.StatusBadRequest,
			Message: "no bearer token to revoke",
		}
	}

	if err := h.authService.Revoke(c.Request().Context(), token); err != nil {
		return domain.ErrInternal
	}
	return Respond(c, http.StatusOK, nil, "token revoked")
}

func presentedToken(c echo.Context) string {
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.Request().Header.Get("x-access-token"))
}
