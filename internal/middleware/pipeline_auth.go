package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
)

// PipelineAuthMiddleware creates a Gin middleware that validates the X-API-Key
// header against the configured price feed API key. An empty key disables the
// pipeline endpoints.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithAppError(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithAppError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode,
		gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}})
}
