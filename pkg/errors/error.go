// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, periods, prices and observations
//   - Strategy errors (400-499): Strategy composition and module faults
//   - Trading errors (500-599): Trade records and order fills
//   - Backtest errors (600-699): Replay engine configuration and reports
//   - Market data errors (700-799): Market data reading and trade record sinks
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeUnknownModule, "unknown entry module %s", kind)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeModuleFault, "entry module failed", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeModuleFault) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error or *MissingModuleError.
// Returns ErrCodeUnknown otherwise.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var missing *MissingModuleError
	if errors.As(err, &missing) {
		return missing.Code()
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// MissingModuleError is returned when a strategy is built without one of
// its four capability modules.
type MissingModuleError struct {
	Capability string
}

// NewMissingModuleError creates a new MissingModuleError for the given capability.
func NewMissingModuleError(capability string) *MissingModuleError {
	return &MissingModuleError{Capability: capability}
}

// Error implements the error interface.
func (e *MissingModuleError) Error() string {
	return fmt.Sprintf("[%d] strategy requires a %s module", ErrCodeMissingModule, e.Capability)
}

// Code returns the error code shared by all missing module errors.
func (e *MissingModuleError) Code() ErrorCode {
	return ErrCodeMissingModule
}

// IsMissingModuleError checks if an error is a MissingModuleError.
// It uses errors.As to check the error chain.
func IsMissingModuleError(err error) bool {
	var missing *MissingModuleError

	return errors.As(err, &missing)
}
