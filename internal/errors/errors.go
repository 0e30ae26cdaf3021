// Package errors provides the application error type shared by the
// aggregation engine, the services and the HTTP layer. Every error that can
// reach a client is an *AppError so responses carry a stable code and never
// leak internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an *AppError with the same code, so that
// errors derived with Wrap or WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Pipeline errors.
var (
	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are not configured", StatusCode: http.StatusServiceUnavailable}
	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Holding validation errors. Any of these rejects the whole aggregation batch.
var (
	ErrInvalidQuantity      = &AppError{Code: "INVALID_QUANTITY", Message: "Quantity must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidPurchasePrice = &AppError{Code: "INVALID_PURCHASE_PRICE", Message: "Purchase price must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidMarketPrice   = &AppError{Code: "INVALID_MARKET_PRICE", Message: "Current market price must be a finite, non-negative number", StatusCode: http.StatusBadRequest}
)

// Market data errors.
var (
	ErrStockNotFound = &AppError{Code: "STOCK_NOT_FOUND", Message: "Stock not found", StatusCode: http.StatusNotFound}
)
