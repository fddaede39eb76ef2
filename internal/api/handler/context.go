package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/techhive/users-api/internal/core/domain"
)

// pathID extracts and validates the :id path segment. Echo never routes an
// empty segment here, but a whitespace-only one still arrives.
func pathID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", domain.ErrMissingIdentifier
	}
	return id, nil
}

// queryInt parses an optional integer query parameter. A present but
// non-numeric value is reported as an invalid range, since the only integer
// parameters on this API are the age bounds.
func queryInt(c echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewInvalidRange(name + " must be an integer")
	}
	return &n, nil
}

// queryBool parses an optional boolean query parameter, tolerating the usual
// strconv spellings.
func queryBool(c echo.Context, name string) *bool {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
