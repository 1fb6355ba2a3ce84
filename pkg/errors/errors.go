// Package errors provides structured error types for the spacelayout application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the engine
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (room specs, catalogs, formats)
//   - UNKNOWN_*: Lookups against a closed catalog that found nothing
//   - NETWORK_*: Failures talking to the remote analysis backend
//   - INTERNAL_*: Unexpected internal errors
//
// The two layout contract violations are [ErrCodeInvalidRoomSpec] and
// [ErrCodeUnknownItemType]. The latter is usually carried by an
// [*UnknownItemTypeError] so callers can recover the offending ids.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRoomSpec, "room length must be positive, got %g", l)
//	if errors.Is(err, errors.ErrCodeInvalidRoomSpec) {
//	    // Handle contract violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "failed to reach %s", url)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidRoomSpec Code = "INVALID_ROOM_SPEC"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidCatalog  Code = "INVALID_CATALOG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Catalog lookup errors
	ErrCodeUnknownItemType Code = "UNKNOWN_ITEM_TYPE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Authentication errors
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// coder is implemented by typed errors that carry their own code.
type coder interface {
	Code() Code
}

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
// The outermost coded error in the chain decides: an *Error wins over a
// typed error it wraps.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.Code()
		}
		err = errors.Unwrap(err)
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
	var u *UnknownItemTypeError
	if errors.As(err, &u) {
		return u.message()
	}
	return err.Error()
}

// UnknownItemTypeError reports an item type id that the catalog does not
// define for the requested space type.
type UnknownItemTypeError struct {
	SpaceType string `json:"spaceTypeId"`
	ItemType  string `json:"itemTypeId"`
}

// Error implements the error interface.
func (e *UnknownItemTypeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeUnknownItemType, e.message())
}

// Code returns the error code for this error type.
func (e *UnknownItemTypeError) Code() Code {
	return ErrCodeUnknownItemType
}

func (e *UnknownItemTypeError) message() string {
	return fmt.Sprintf("item type %q is not defined for space type %q", e.ItemType, e.SpaceType)
}

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}
