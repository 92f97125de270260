// Package errors provides application-level error types and utilities.
// It defines the settlement error taxonomy (not found, invalid state,
// expired, unauthorized, amount mismatch, ...) returned by the core to its
// callers as typed, recoverable outcomes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation_error"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeInvalidState   ErrorType = "invalid_state"
	ErrorTypeAlreadySettled ErrorType = "already_settled"
	ErrorTypeAlreadyClaimed ErrorType = "already_claimed"
	ErrorTypeExpired        ErrorType = "expired"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeAmountMismatch ErrorType = "amount_mismatch"
	ErrorTypeInvalidSecret  ErrorType = "invalid_secret"
	ErrorTypeInternal       ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewInvalidStateError creates an error for an obligation that exists but is
// not in a settleable state (already paid, settled, claimed, or cancelled).
func NewInvalidStateError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidState, http.StatusConflict, message, details...)
}

// NewAlreadySettledError is the InvalidState case callers differentiate:
// someone else already paid this obligation.
func NewAlreadySettledError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAlreadySettled, http.StatusConflict, message, details...)
}

// NewAlreadyClaimedError reports a gift whose claim already happened.
func NewAlreadyClaimedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAlreadyClaimed, http.StatusConflict, message, details...)
}

// NewExpiredError reports an obligation whose expiry has passed.
func NewExpiredError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeExpired, http.StatusGone, message, details...)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusForbidden, message, details...)
}

// NewAmountMismatchError reports a supplied amount that does not exactly
// equal the required amount. Partial payment is never accepted.
func NewAmountMismatchError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAmountMismatch, http.StatusUnprocessableEntity, message, details...)
}

// NewInvalidSecretError reports a gift claim whose secret digest mismatched.
func NewInvalidSecretError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInvalidSecret, http.StatusForbidden, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsInvalidStateError checks if the error is an invalid state error
func IsInvalidStateError(err error) bool {
	return isType(err, ErrorTypeInvalidState)
}

// IsAlreadySettledError checks if the error is an already settled error
func IsAlreadySettledError(err error) bool {
	return isType(err, ErrorTypeAlreadySettled)
}

// IsAlreadyClaimedError checks if the error is an already claimed error
func IsAlreadyClaimedError(err error) bool {
	return isType(err, ErrorTypeAlreadyClaimed)
}

// IsExpiredError checks if the error is an expired error
func IsExpiredError(err error) bool {
	return isType(err, ErrorTypeExpired)
}

// IsUnauthorizedError checks if the error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

// IsAmountMismatchError checks if the error is an amount mismatch error
func IsAmountMismatchError(err error) bool {
	return isType(err, ErrorTypeAmountMismatch)
}

// IsInvalidSecretError checks if the error is an invalid secret error
func IsInvalidSecretError(err error) bool {
	return isType(err, ErrorTypeInvalidSecret)
}
