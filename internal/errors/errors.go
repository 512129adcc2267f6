// Package errors provides custom error types for the finbot service.
// All service-layer errors should use AppError so that internal details
// (SQL text, connection strings, driver errors) are logged but never
// reach an end user's chat.
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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrForbidden      = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// User errors.
var (
	ErrUserNotRegistered = &AppError{Code: "USER_NOT_REGISTERED", Message: "Chat is not linked to a registered user", StatusCode: http.StatusNotFound}
	ErrDuplicateChatID   = &AppError{Code: "DUPLICATE_CHAT_ID", Message: "A user with this chat ID already exists", StatusCode: http.StatusConflict}
)

// Ledger errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrBillNotFound    = &AppError{Code: "BILL_NOT_FOUND", Message: "No pending bill matches the description", StatusCode: http.StatusNotFound}
	ErrGoalNotFound    = &AppError{Code: "GOAL_NOT_FOUND", Message: "No goal set for this category", StatusCode: http.StatusNotFound}
)

// Classifier errors.
var (
	ErrClassification = &AppError{Code: "CLASSIFICATION_FAILED", Message: "Could not classify the message", StatusCode: http.StatusBadGateway}
)
