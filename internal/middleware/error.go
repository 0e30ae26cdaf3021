package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their code and message; unexpected errors are logged and return a generic
// internal error to avoid leaking details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"request_id", c.GetString(requestIDKey),
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			abortWithAppError(c, appErr)
			return
		}

		// Unexpected error: log full details, return generic message
		logger.Get().Errorw("unexpected error",
			"request_id", c.GetString(requestIDKey),
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		abortWithAppError(c, apperrors.ErrInternalServer)
	}
}

// Recovery returns a Gin middleware that turns panics into a logged
// INTERNAL_ERROR response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"request_id", c.GetString(requestIDKey),
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		abortWithAppError(c, apperrors.ErrInternalServer)
	})
}
