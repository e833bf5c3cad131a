// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes following domain-driven design
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Costing rule violations (422)
	CodeInvalidQuantity     = "INVALID_QUANTITY"
	CodeInvalidCapacity     = "INVALID_CAPACITY"
	CodeInvalidMargin       = "INVALID_MARGIN"
	CodeInvalidPackQuantity = "INVALID_PACK_QUANTITY"
	CodeDanglingReference   = "DANGLING_REFERENCE"
	CodeUnitMismatch        = "UNIT_MISMATCH"
	CodeBreakEvenUnreachable = "BREAK_EVEN_UNREACHABLE"

	// Concurrency (409)
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
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

// --- Factory functions for common errors ---

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

// NewInvalidQuantity is returned for zero or negative physical quantities.
func NewInvalidQuantity(field string, value any) *AppError {
	return &AppError{
		Code:       CodeInvalidQuantity,
		Message:    "quantity must be positive",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"field": field, "value": value},
	}
}

// NewInvalidCapacity is returned when packaging capacity is below one unit.
func NewInvalidCapacity(value any) *AppError {
	return &AppError{
		Code:       CodeInvalidCapacity,
		Message:    "packaging capacity must be at least 1",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"capacity": value},
	}
}

// NewInvalidMargin is returned when a target margin is 100% or more.
// Recommended price divides by (1 - margin/100), so such margins are not priceable.
func NewInvalidMargin(value any) *AppError {
	return &AppError{
		Code:       CodeInvalidMargin,
		Message:    "target margin must be below 100%",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"target_margin_pct": value},
	}
}

// NewInvalidPackQuantity is returned when a sales format holds no units.
func NewInvalidPackQuantity(value any) *AppError {
	return &AppError{
		Code:       CodeInvalidPackQuantity,
		Message:    "pack quantity must be positive",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"quantity": value},
	}
}

// NewDanglingReference is returned when an entity references a missing id.
func NewDanglingReference(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeDanglingReference,
		Message:    fmt.Sprintf("referenced %s does not exist", entity),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewUnitMismatch is returned when converting across unit classes (mass/volume/count).
func NewUnitMismatch(from, to string) *AppError {
	return &AppError{
		Code:       CodeUnitMismatch,
		Message:    "units belong to different measurement classes",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"from": from, "to": to},
	}
}

// NewBreakEvenUnreachable is returned when no sales volume clears fixed charges.
func NewBreakEvenUnreachable(avgContribution any) *AppError {
	return &AppError{
		Code:       CodeBreakEvenUnreachable,
		Message:    "average contribution margin does not cover fixed charges",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"average_contribution_margin": avgContribution},
	}
}

// NewConcurrentModification creates an optimistic locking error
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
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

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
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

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsCode checks if error carries the given code.
func IsCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
