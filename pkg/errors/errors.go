// Package errors provides structured error types for porter.
//
// Errors carry a machine-readable [Code] next to a human-readable message,
// so the CLI can print a clean message while tests and callers match on the
// category:
//   - INVALID_*: rejected input (metric, threshold, format, prefix)
//   - FILE_NOT_FOUND, DECODE_FAILED, ENCODE_FAILED: per-image I/O failures
//   - CACHE_ERROR, CONFIG_ERROR: infrastructure failures
//   - UNSUPPORTED, INTERNAL: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidThreshold, "lower threshold %d exceeds higher threshold %d", lo, hi)
//	if errors.Is(err, errors.ErrCodeInvalidThreshold) {
//	    // reject before sorting
//	}
//
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidMetric    Code = "INVALID_METRIC"
	ErrCodeInvalidThreshold Code = "INVALID_THRESHOLD"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPrefix    Code = "INVALID_PREFIX"

	// Per-image I/O errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeDecode       Code = "DECODE_FAILED"
	ErrCodeEncode       Code = "ENCODE_FAILED"

	// Infrastructure errors
	ErrCodeCache  Code = "CACHE_ERROR"
	ErrCodeConfig Code = "CONFIG_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// For *Error types, returns the message without the code prefix, followed by
// the cause when there is one. For other errors, returns the error string.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
