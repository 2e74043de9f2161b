package errors

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/paradiso/internal/logger"
)

// ParadisoError represents a structured error with HTTP context
type ParadisoError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Context    map[string]interface{} `json:"context,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

func (e *ParadisoError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ParadisoError) Unwrap() error {
	return e.Cause
}

// ToGinResponse sends the error as a standardized JSON response
func (e *ParadisoError) ToGinResponse(c *gin.Context) {
	statusCode := e.HTTPStatus
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	response := gin.H{
		"error": e.Message,
		"code":  e.Code,
	}

	if len(e.Context) > 0 {
		response["details"] = e.Context
	}

	logger.ErrorStructured("HTTP error response",
		logger.Int("status", statusCode),
		logger.String("code", e.Code),
		logger.String("message", e.Message),
		logger.String("path", c.Request.URL.Path),
		logger.String("method", c.Request.Method))

	c.JSON(statusCode, response)
}

// Common error constructors

func NewValidationError(message string, field string) *ParadisoError {
	return &ParadisoError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Context:    map[string]interface{}{"field": field},
	}
}

func NewNotFoundError(resource string, id string) *ParadisoError {
	return &ParadisoError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
		Context:    map[string]interface{}{"resource": resource, "id": id},
	}
}

func NewConflictError(message string, resource string) *ParadisoError {
	return &ParadisoError{
		Code:       "CONFLICT",
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Context:    map[string]interface{}{"resource": resource},
	}
}

// NewUpstreamNotFoundError carries the metadata provider's own message so the
// caller sees why the lookup came back empty.
func NewUpstreamNotFoundError(provider string, message string) *ParadisoError {
	return &ParadisoError{
		Code:       "UPSTREAM_NOT_FOUND",
		Message:    message,
		HTTPStatus: http.StatusNotFound,
		Context:    map[string]interface{}{"provider": provider},
	}
}

func NewInternalError(message string, cause error) *ParadisoError {
	return &ParadisoError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewDatabaseError(operation string, cause error) *ParadisoError {
	return &ParadisoError{
		Code:       "DATABASE_ERROR",
		Message:    "Database operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Context:    map[string]interface{}{"operation": operation},
		Cause:      cause,
	}
}

// HTTP helpers to eliminate duplicate error handling

// HandleValidationError sends a validation error response
func HandleValidationError(c *gin.Context, message string, field string) {
	NewValidationError(message, field).ToGinResponse(c)
}

// HandleNotFound sends a not found error response
func HandleNotFound(c *gin.Context, resource string, id string) {
	NewNotFoundError(resource, id).ToGinResponse(c)
}

// HandleConflict sends a conflict error response
func HandleConflict(c *gin.Context, message string, resource string) {
	NewConflictError(message, resource).ToGinResponse(c)
}

// HandleUpstreamNotFound sends the provider's not-found message as a 404
func HandleUpstreamNotFound(c *gin.Context, provider string, message string) {
	NewUpstreamNotFoundError(provider, message).ToGinResponse(c)
}

// HandleInternalError sends an internal server error response
func HandleInternalError(c *gin.Context, message string, err error) {
	NewInternalError(message, err).ToGinResponse(c)
}

// HandleDatabaseError sends a database error response
func HandleDatabaseError(c *gin.Context, operation string, err error) {
	NewDatabaseError(operation, err).ToGinResponse(c)
}

// ParseAndValidateID parses a numeric path parameter, sending a validation
// error response when it is missing or malformed
func ParseAndValidateID(c *gin.Context, paramName string) (uint32, bool) {
	raw := c.Param(paramName)
	if raw == "" {
		HandleValidationError(c, "Missing "+paramName, paramName)
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		HandleValidationError(c, "Invalid "+paramName+" format", paramName)
		return 0, false
	}

	return uint32(id), true
}
