// Package errors provides the structured error taxonomy for floorsa.
//
// This package defines error codes and a typed Error that enable:
//   - Consistent error handling across the CLI and the core packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages separate from the error code
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow the taxonomy of the floorplanner's error handling
// design: input errors (a malformed .block file), configuration errors (an
// unknown strategy tag), log-file errors (the convergence CSV could not be
// opened), and an internal bucket for anything else.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "block %q has no variants", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle input validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLogFile, origErr, "opening %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the floorplanner's error taxonomy (see spec §7).
const (
	// ErrCodeInvalidInput marks an unreadable or malformed .block file.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeUnknownStrategy marks an unrecognised strategy tag. Callers
	// that hit this code should fall back to MultiStart_Coarse rather than
	// aborting, per spec §7.
	ErrCodeUnknownStrategy Code = "UNKNOWN_STRATEGY"

	// ErrCodeInvalidConfig marks a malformed or out-of-range hyperparameter
	// bundle (e.g. T_start <= T_min).
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeLogFile marks a failure to open the convergence CSV log. The
	// run proceeds without logging rather than aborting.
	ErrCodeLogFile Code = "LOG_FILE_ERROR"

	// ErrCodeInternal is the catch-all for unexpected internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
