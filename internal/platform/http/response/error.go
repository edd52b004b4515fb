// Package response writes the JSON error envelope shared by every endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stable client-facing messages.
const (
	MsgBadRequest         = "Invalid request payload"
	MsgUnauthorized       = "Unauthorized"
	MsgInvalidCredentials = "Invalid credentials"
	MsgTooManyRequests    = "Too many requests"
	MsgInternal           = "Internal server error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewError builds an ErrorResponse for status with the given message.
func NewError(status int, message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	}
}

// Error writes an error response.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, NewError(status, message))
}

// Abort writes an error response and stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, NewError(status, message))
}
