// Package response defines the JSON error envelope shared by all endpoints.
// Successful responses return their resource payloads directly; only failures
// use the envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the unified error envelope.
type ErrorResponse struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries machine-readable error detail.
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g. "INVOICE_NOT_FOUND"
	Details string `json:"details"` // Detailed error description
}

// Error writes an error envelope with the given status and business code.
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BindingError reports a request body that could not be decoded.
func BindingError(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}

// NotFound 404 error
func NotFound(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, "")
}
