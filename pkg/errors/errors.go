package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Resolution errors
	ErrManifestLoad              ErrorCode = "MANIFEST_LOAD"
	ErrMissingRepository         ErrorCode = "MISSING_REPOSITORY"
	ErrUnsupportedRepositoryType ErrorCode = "UNSUPPORTED_REPOSITORY_TYPE"
	ErrInvalidRepository         ErrorCode = "INVALID_REPOSITORY"

	// Pipeline errors
	ErrClone          ErrorCode = "CLONE"
	ErrProcessExit    ErrorCode = "PROCESS_EXIT"
	ErrProcessTimeout ErrorCode = "PROCESS_TIMEOUT"
	ErrWorkingDir     ErrorCode = "WORKING_DIR"
)

// LinkError represents a structured error with code and details
type LinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *LinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *LinkError) Is(target error) bool {
	var targetErr *LinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LinkError with the given code and message
func New(code ErrorCode, message string) *LinkError {
	return &LinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LinkError {
	return &LinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a LinkError
func Wrap(err error, code ErrorCode, message string) *LinkError {
	if err == nil {
		return nil
	}
	return &LinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LinkError {
	if err == nil {
		return nil
	}
	return &LinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *LinkError) WithDetail(key string, value interface{}) *LinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *LinkError) WithDetails(details map[string]interface{}) *LinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ProcessExitError is returned when an external command does not exit cleanly.
// ExitCode is -1 when the process never ran to completion (start failure,
// timeout, cancellation); Err then holds the cause.
type ProcessExitError struct {
	Command  string
	Args     []string
	ExitCode int
	Err      error
}

func (e *ProcessExitError) Error() string {
	cmdline := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	if e.Err != nil && e.ExitCode < 0 {
		return fmt.Sprintf("abnormal exit from %s: %v", cmdline, e.Err)
	}
	return fmt.Sprintf("abnormal exit from %s with code %d", cmdline, e.ExitCode)
}

func (e *ProcessExitError) Unwrap() error {
	return e.Err
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the error code from an error, or ErrUnknown if it
// carries none
func GetErrorCode(err error) ErrorCode {
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Code
	}
	var exitErr *ProcessExitError
	if errors.As(err, &exitErr) {
		if errors.Is(exitErr.Err, context.DeadlineExceeded) {
			return ErrProcessTimeout
		}
		return ErrProcessExit
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LinkError
func GetErrorDetails(err error) map[string]interface{} {
	var linkErr *LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Details
	}
	return nil
}
