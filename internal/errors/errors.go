package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeAlreadyConfirmed = "ALREADY_CONFIRMED"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// exposeDetails controls whether internal error details reach clients.
var exposeDetails = false

// SetExposeDetails toggles internal details on 500/503 responses (development only).
func SetExposeDetails(enabled bool) {
	exposeDetails = enabled
}

// APIError represents a standardized API error response
type APIError struct {
	Message string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// InvalidCredentials sends a 401 response for a rejected secret
func InvalidCredentials(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid credentials"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeInvalidCredentials, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// AlreadyConfirmed sends a 400 response distinct from plain validation failures
func AlreadyConfirmed(c *gin.Context, message string) {
	if message == "" {
		message = "Invitation is already confirmed"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeAlreadyConfirmed, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response. err is only surfaced when details are exposed.
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "Internal server error"
	}
	if err != nil {
		_ = c.Error(err)
	}
	RespondWithError(c, http.StatusInternalServerError, withDetails(ErrCodeInternalError, message, err))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string, err error) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	if err != nil {
		_ = c.Error(err)
	}
	RespondWithError(c, http.StatusServiceUnavailable, withDetails(ErrCodeServiceUnavailable, message, err))
}

func withDetails(code, message string, err error) *APIError {
	if exposeDetails && err != nil {
		return NewAPIErrorWithDetails(code, message, err.Error())
	}
	return NewAPIError(code, message)
}
