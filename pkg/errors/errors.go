package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeStorage    ErrorCode = "STORAGE_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error. Message is safe to show to
// clients; Err carries the underlying cause for server-side logs.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a client-caused validation error
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// Storage wraps a storage failure (connectivity, constraint, timeout)
func Storage(message string, err error) *AppError {
	return Wrap(ErrCodeStorage, message, err)
}

// CodeOf returns the error's code, or ErrCodeInternal for errors that are
// not AppErrors.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsValidation checks if error is client-caused
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

// IsStorage checks if error is a storage failure
func IsStorage(err error) bool {
	return CodeOf(err) == ErrCodeStorage
}
