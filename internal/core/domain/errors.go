package domain

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned in the `code` field of every
// error envelope. Clients match on these, never on the message text.
const (
	CodeValidationError         = "VALIDATION_ERROR"
	CodeMissingCredentials      = "MISSING_CREDENTIALS"
	CodeMissingIdentifier       = "MISSING_IDENTIFIER"
	CodeInvalidRange            = "INVALID_RANGE"
	CodeInvalidJSON             = "INVALID_JSON"
	CodeTokenRequired           = "TOKEN_REQUIRED"
	CodeInvalidTokenFormat      = "INVALID_TOKEN_FORMAT"
	CodeTokenRevoked            = "TOKEN_REVOKED"
	CodeInvalidTokenSignature   = "INVALID_TOKEN_SIGNATURE"
	CodeTokenNotYetValid        = "TOKEN_NOT_YET_VALID"
	CodeInvalidTokenPayload     = "INVALID_TOKEN_PAYLOAD"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeInvalidAPIKey           = "INVALID_API_KEY"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeAuthRequired            = "AUTH_REQUIRED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeNotFound                = "NOT_FOUND"
	CodeDuplicateEmail          = "DUPLICATE_EMAIL"
	CodeConflict                = "CONFLICT"
	CodeTooManyRequests         = "TOO_MANY_REQUESTS"
	CodeInternalError           = "INTERNAL_ERROR"
)

// Error is the structured failure type flowing from the core layers to the
// HTTP boundary. Status is the default HTTP status for the code; Data carries
// code-specific context that is safe to return to the caller (validation
// messages, required roles).
type Error struct {
	Code    string
	Status  int
	Message string
	Data    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two domain errors by code, so the sentinel values below work
// with errors.Is even across instances carrying different Data.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Sentinel failures. Comparisons go through errors.Is.
var (
	ErrMissingCredentials    = newError(CodeMissingCredentials, http.StatusBadRequest, "email and password are required")
	ErrMissingIdentifier     = newError(CodeMissingIdentifier, http.StatusBadRequest, "user id is required")
	ErrInvalidJSON           = newError(CodeInvalidJSON, http.StatusBadRequest, "request body is not valid JSON")
	ErrTokenRequired         = newError(CodeTokenRequired, http.StatusUnauthorized, "authentication token required")
	ErrInvalidTokenFormat    = newError(CodeInvalidTokenFormat, http.StatusUnauthorized, "malformed authentication token")
	ErrTokenRevoked          = newError(CodeTokenRevoked, http.StatusUnauthorized, "token has been revoked")
	ErrInvalidTokenSignature = newError(CodeInvalidTokenSignature, http.StatusUnauthorized, "token signature is invalid")
	ErrTokenNotYetValid      = newError(CodeTokenNotYetValid, http.StatusUnauthorized, "token is not valid yet")
	ErrInvalidTokenPayload   = newError(CodeInvalidTokenPayload, http.StatusUnauthorized, "token payload is incomplete")
	ErrTokenUserNotFound     = newError(CodeUserNotFound, http.StatusUnauthorized, "token subject no longer exists")
	ErrTokenExpired          = newError(CodeTokenExpired, http.StatusUnauthorized, "token has expired")
	ErrInvalidAPIKey         = newError(CodeInvalidAPIKey, http.StatusUnauthorized, "invalid api key")
	ErrInvalidCredentials    = newError(CodeInvalidCredentials, http.StatusUnauthorized, "invalid email or password")
	ErrAuthRequired          = newError(CodeAuthRequired, http.StatusUnauthorized, "authentication required")
	ErrNotFound              = newError(CodeNotFound, http.StatusNotFound, "user not found")
	ErrDuplicateEmail        = newError(CodeDuplicateEmail, http.StatusConflict, "a user with this email already exists")
	ErrTooManyRequests       = newError(CodeTooManyRequests, http.StatusTooManyRequests, "too many requests")
	ErrInternal              = newError(CodeInternalError, http.StatusInternalServerError, "internal server error")
)

// NewValidationError reports every failed rule at once; messages end up in
// the envelope's data.errors list.
func NewValidationError(messages []string) *Error {
	return &Error{
		Code:    CodeValidationError,
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Data:    map[string]any{"errors": messages},
	}
}

// NewInvalidRange describes a rejected age-range query.
func NewInvalidRange(message string) *Error {
	return &Error{Code: CodeInvalidRange, Status: http.StatusBadRequest, Message: message}
}

// NewInsufficientPermissions names both the roles the route demands and the
// role the caller actually holds.
func NewInsufficientPermissions(required []Role, actual Role) *Error {
	roles := make([]string, 0, len(required))
	for _, r := range required {
		roles = append(roles, string(r))
	}
	return &Error{
		Code:    CodeInsufficientPermissions,
		Status:  http.StatusForbidden,
		Message: "insufficient permissions for this resource",
		Data:    map[string]any{"requiredRoles": roles, "yourRole": string(actual)},
	}
}
