package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/techhive/users-api/internal/api/handler"
	"github.com/techhive/users-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps structured domain errors to their status, stable code, and safe data.
//   - Translates Echo's own errors (router 404s, method mismatches) into the same envelope.
//   - Logs unexpected errors internally and reports them as INTERNAL_ERROR,
//     with the real cause included only outside production.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, env := resolveError(err, log, c, production)
		env.Timestamp = time.Now().UTC().Format(time.RFC3339)
		env.RequestID = handler.RequestID(c)
		_ = c.JSON(status, env)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, handler.Envelope) {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Status, handler.Envelope{
			Error: de.Message,
			Code:  de.Code,
			Data:  de.Data,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := domain.CodeInternalError
		switch he.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			code = domain.CodeNotFound
		case http.StatusBadRequest:
			code = domain.CodeInvalidJSON
		case http.StatusUnauthorized:
			code = domain.CodeAuthRequired
		case http.StatusForbidden:
			code = domain.CodeInsufficientPermissions
		case http.StatusTooManyRequests:
			code = domain.CodeTooManyRequests
		}
		return he.Code, handler.Envelope{Error: fmt.Sprintf("%v", he.Message), Code: code}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	env := handler.Envelope{Error: "internal server error", Code: domain.CodeInternalError}
	if !production {
		env.Data = map[string]any{"detail": err.Error()}
	}
	return http.StatusInternalServerError, env
}
