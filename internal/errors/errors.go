package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       = "INVALID_TOKEN"

	// Authorization
	ErrCodeForbidden = "FORBIDDEN"

	// Validation
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeInvalidQuery = "INVALID_QUERY"
	ErrCodeInvalidID    = "INVALID_ID"

	// Resources
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeEmailTaken = "EMAIL_TAKEN"
	ErrCodeConflict   = "CONFLICT"

	// Service
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeTimeout       = "TIMEOUT"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

func NewAPIErrorWithDetails(code, message string, details any) *APIError {
	return &APIError{Code: code, Message: message, Details: details}
}

// Respond writes err with the given status and aborts the handler chain.
func Respond(c *gin.Context, status int, err *APIError) {
	c.AbortWithStatusJSON(status, err)
}

func respond(c *gin.Context, status int, code, message, fallback string) {
	if message == "" {
		message = fallback
	}
	Respond(c, status, NewAPIError(code, message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, "Authentication required")
}

// InvalidCredentials sends a 401 response for failed logins
func InvalidCredentials(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, message, "Invalid email or password")
}

// InvalidToken sends a 401 response for bad bearer tokens
func InvalidToken(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeInvalidToken, message, "Invalid or expired token")
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrCodeForbidden, message, "Access denied")
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeNotFound, message, "Resource not found")
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, "Invalid request")
}

// InvalidQuery sends a 400 response for rejected listing parameters
func InvalidQuery(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidQuery, message, "Invalid query parameters")
}

// InvalidID sends a 400 response for malformed identifiers
func InvalidID(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidID, message, "Invalid identifier")
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details any) {
	Respond(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// EmailTaken sends a 409 response
func EmailTaken(c *gin.Context) {
	Respond(c, http.StatusConflict, NewAPIError(ErrCodeEmailTaken, "Email is already registered"))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeConflict, message, "Resource conflict")
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, message, "Internal server error")
}

// Timeout sends a 504 response
func Timeout(c *gin.Context) {
	Respond(c, http.StatusGatewayTimeout, NewAPIError(ErrCodeTimeout, "Request timed out"))
}
