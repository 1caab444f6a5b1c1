// Package errors provides custom error types for the Trip API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
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

// Authentication & rate limiting errors.
var (
	ErrMissingAPIKey = &AppError{Code: "MISSING_API_KEY", Message: "Missing API key", StatusCode: http.StatusUnauthorized}
	ErrInvalidAPIKey = &AppError{Code: "INVALID_API_KEY", Message: "Invalid API key", StatusCode: http.StatusUnauthorized}
	ErrRateLimited   = &AppError{Code: "RATE_LIMITED", Message: "Rate limit exceeded", StatusCode: http.StatusTooManyRequests}
)

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Not-found errors, one per entity so clients can tell which reference broke.
var (
	ErrTripNotFound        = &AppError{Code: "TRIP_NOT_FOUND", Message: "Trip not found", StatusCode: http.StatusNotFound}
	ErrReservationNotFound = &AppError{Code: "RESERVATION_NOT_FOUND", Message: "Reservation not found", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Budget category not found", StatusCode: http.StatusNotFound}
	ErrSpendEntryNotFound  = &AppError{Code: "SPEND_ENTRY_NOT_FOUND", Message: "Spend entry not found", StatusCode: http.StatusNotFound}
)

// Conflict errors: uniqueness and cross-trip reference violations.
var (
	ErrDuplicateCategoryName   = &AppError{Code: "DUPLICATE_CATEGORY_NAME", Message: "Category name already exists for this trip", StatusCode: http.StatusConflict}
	ErrReservationTripMismatch = &AppError{Code: "RESERVATION_TRIP_MISMATCH", Message: "reservation_id does not belong to this trip", StatusCode: http.StatusConflict}
	ErrCategoryTripMismatch    = &AppError{Code: "CATEGORY_TRIP_MISMATCH", Message: "category_id does not belong to this trip", StatusCode: http.StatusConflict}
)
