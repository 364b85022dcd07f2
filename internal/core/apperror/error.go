// Package apperror provides structured error handling following RFC 7807 Problem Details.
// Executors return AppError for every failure the caller can observe; storage adapters
// return plain wrapped errors and never build AppErrors themselves.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal           = "INTERNAL_ERROR"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeWriteFailed        = "WRITE_FAILED"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Business rule violations (404, 422)
	CodeTeamNotFound = "TEAM_NOT_FOUND"
	CodeTeamFull     = "TEAM_FULL"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (ids, operation names)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewTeamNotFound is returned when a command references a team that does not exist.
func NewTeamNotFound(teamID string) *AppError {
	return &AppError{
		Code:       CodeTeamNotFound,
		Message:    "Team does not exist",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"team_id": teamID},
	}
}

// NewTeamFull is returned when the referenced team has no open roster slots.
func NewTeamFull(teamID string) *AppError {
	return &AppError{
		Code:       CodeTeamFull,
		Message:    "Team has no free roster slots",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"team_id": teamID},
	}
}

// NewBackendUnavailable wraps an infrastructure failure while opening a
// transaction or reading from the backend (503).
func NewBackendUnavailable(op string, err error) *AppError {
	return &AppError{
		Code:       CodeBackendUnavailable,
		Message:    "Storage backend unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"op": op},
		Err:        err,
	}
}

// NewWriteFailed wraps a failure of the transactional write or its commit.
func NewWriteFailed(op string, err error) *AppError {
	return &AppError{
		Code:       CodeWriteFailed,
		Message:    "Write could not be completed",
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"op": op},
		Err:        err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}

func IsTeamNotFound(err error) bool {
	return HasCode(err, CodeTeamNotFound)
}

func IsTeamFull(err error) bool {
	return HasCode(err, CodeTeamFull)
}

func IsBackendUnavailable(err error) bool {
	return HasCode(err, CodeBackendUnavailable)
}

func IsWriteFailed(err error) bool {
	return HasCode(err, CodeWriteFailed)
}
