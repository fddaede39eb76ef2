package handler

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the canonical JSON wrapper for every response, success or error.
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId"`
}

// Respond writes a success envelope with the given status and payload.
func Respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: RequestID(c),
	})
}

// RequestID returns the id assigned by the RequestID middleware.
func RequestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
