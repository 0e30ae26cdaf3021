package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/logger"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/validator"
)

// dateOnly is the calendar-date layout accepted alongside RFC3339.
const dateOnly = "2006-01-02"

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// parseSymbolParam reads and normalizes a ticker path parameter.
func parseSymbolParam(c *gin.Context, param string) (string, error) {
	raw := strings.TrimSpace(c.Param(param))
	if !validator.ValidSymbol(raw) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return models.NormalizeSymbol(raw), nil
}

// parseFlexibleTime parses an RFC3339 timestamp or a YYYY-MM-DD date, the
// latter as midnight UTC.
func parseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", s)
}

// parseOptionalTime parses an optional flexible timestamp field.
func parseOptionalTime(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*s)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, field+": "+err.Error())
	}
	return &t, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
// NotFound answers requests that match no route.
func NotFound(c *gin.Context) {
	respondWithError(c, apperrors.ErrNotFound)
}

func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"request_id", middleware.RequestID(c),
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"request_id", middleware.RequestID(c),
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
