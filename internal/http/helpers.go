package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/validation"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // per-field validation messages
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondValidationError sends a 400 with per-field details when err is a
// validation error, and a plain bad request otherwise.
func respondValidationError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Code:    "validation_failed",
			Details: verr.Fields,
		})
		return
	}
	respondBadRequest(c, err.Error())
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log *zap.Logger, err error, context string) {
	log.Error("internal error", zap.String("context", context), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// --- Request Binding ---

// bindJSON decodes the request body into req and validates it. On failure it
// writes the 400 response and returns false.
func bindJSON(c *gin.Context, v *validation.Validator, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBadRequest(c, "invalid request body")
		return false
	}
	if err := v.Validate(req); err != nil {
		respondValidationError(c, err)
		return false
	}
	return true
}
