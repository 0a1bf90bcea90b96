package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Validation error types. These are the only class surfaced to callers
// with their real message; everything else degrades to a safe default.
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation error", nil)
	ErrEmptyCart    = New(http.StatusBadRequest, "No items in cart", nil)
	ErrInvalidEmail = New(http.StatusBadRequest, "Invalid email format", nil)
)

// Integration error types
var (
	ErrProvider     = New(http.StatusInternalServerError, "Failed to create checkout session", nil)
	ErrChainRead    = New(http.StatusBadGateway, "Chain read failed", nil)
	ErrSignature    = New(http.StatusBadRequest, "Invalid signature", nil)
	ErrNotification = New(http.StatusInternalServerError, "Notification delivery failed", nil)
)

// Error middleware for Gin
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *Error
			if e, ok := err.(*Error); ok {
				appErr = e
			} else {
				appErr = New(http.StatusInternalServerError, "Internal server error", err)
			}

			c.JSON(appErr.Code, appErr)
			c.Abort()
		}
	}
}
