// Package errors provides custom error types for the Merkliste API.
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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Store errors surfaced by the persistence gateway.
var (
	ErrConstraintViolation = &AppError{Code: "CONSTRAINT_VIOLATION", Message: "The operation violates a data constraint", StatusCode: http.StatusConflict}
	ErrStoreUnavailable    = &AppError{Code: "STORE_UNAVAILABLE", Message: "The data store is temporarily unavailable", StatusCode: http.StatusServiceUnavailable}
)

// Project errors.
var (
	ErrProjectNotFound = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
)

// Checklist errors.
var (
	ErrChecklistNotFound = &AppError{Code: "CHECKLIST_NOT_FOUND", Message: "Checklist not found", StatusCode: http.StatusNotFound}
	ErrChecklistExists   = &AppError{Code: "CHECKLIST_EXISTS", Message: "The project already has a checklist", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Todo errors.
var (
	ErrTodoNotFound = &AppError{Code: "TODO_NOT_FOUND", Message: "Todo not found", StatusCode: http.StatusNotFound}
)
