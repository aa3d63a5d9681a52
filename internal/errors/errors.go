package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"
	ErrNotATerminal ErrorCode = "NOT_A_TERMINAL"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Environment store errors
	ErrStoreRead  ErrorCode = "STORE_READ"
	ErrStoreWrite ErrorCode = "STORE_WRITE"

	// Backup errors
	ErrBackup ErrorCode = "BACKUP"
)

// EditPathError represents a structured error with code and details
type EditPathError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EditPathError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EditPathError) Unwrap() error {
	return e.Wrapped
}

// Is matches any EditPathError carrying the same code.
func (e *EditPathError) Is(target error) bool {
	var targetErr *EditPathError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EditPathError with the given code and message
func New(code ErrorCode, message string) *EditPathError {
	return &EditPathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EditPathError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EditPathError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *EditPathError {
	if err == nil {
		return nil
	}
	return &EditPathError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EditPathError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *EditPathError) WithDetail(key string, value interface{}) *EditPathError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var epErr *EditPathError
	if errors.As(err, &epErr) {
		return epErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EditPathError
func GetErrorCode(err error) ErrorCode {
	var epErr *EditPathError
	if errors.As(err, &epErr) {
		return epErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an EditPathError
func GetErrorDetails(err error) map[string]interface{} {
	var epErr *EditPathError
	if errors.As(err, &epErr) {
		return epErr.Details
	}
	return nil
}
