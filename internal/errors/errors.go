// Package errors provides custom error types for the Foundly API.
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

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountDisabled    = &AppError{Code: "ACCOUNT_DISABLED", Message: "Account is suspended or banned", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrSelfSuspension = &AppError{Code: "SELF_SUSPENSION", Message: "Admins cannot change their own account status", StatusCode: http.StatusBadRequest}
)

// Claim errors.
var (
	ErrClaimNotFound       = &AppError{Code: "CLAIM_NOT_FOUND", Message: "Claim not found", StatusCode: http.StatusNotFound}
	ErrClaimAlreadyClosed  = &AppError{Code: "CLAIM_ALREADY_CLOSED", Message: "Claim has already been reviewed", StatusCode: http.StatusConflict}
	ErrRejectNotesRequired = &AppError{Code: "REJECT_NOTES_REQUIRED", Message: "Review notes are required when rejecting a claim", StatusCode: http.StatusBadRequest}
)

// Item errors.
var (
	ErrItemNotFound    = &AppError{Code: "ITEM_NOT_FOUND", Message: "Item not found", StatusCode: http.StatusNotFound}
	ErrItemUnavailable = &AppError{Code: "ITEM_UNAVAILABLE", Message: "Item is no longer available to be claimed", StatusCode: http.StatusConflict}
)

// Notification errors.
var (
	ErrNotificationNotFound = &AppError{Code: "NOTIFICATION_NOT_FOUND", Message: "Notification not found", StatusCode: http.StatusNotFound}
)
