package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON    ErrorCode = "INVALID_JSON"
	ErrorCodeRecipeNotFound ErrorCode = "RECIPE_NOT_FOUND"

	// Server Error Codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Error     string    `json:"error"`
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string) {
	errorResponse := &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}

	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendInternalError sends a 500 response for an unexpected failure.
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Failed to "+operation+": "+err.Error())
}
