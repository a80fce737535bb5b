package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakumura/taskboard-api/internal/dto"
)

// Helper functions for common error responses. Every failure goes out in the
// same envelope the success path uses.

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	c.JSON(http.StatusUnauthorized, dto.Err(message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, dto.Err(message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, dto.Err(message))
}

// ValidationFailed sends a 400 response carrying field-level errors
func ValidationFailed(c *gin.Context, errors map[string][]string) {
	c.JSON(http.StatusBadRequest, dto.ValidationErr(errors))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	c.JSON(http.StatusConflict, dto.Err(message))
}

// InternalError sends a 500 response. Internal detail stays out of the body.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, dto.Err("An unexpected error occurred"))
}
