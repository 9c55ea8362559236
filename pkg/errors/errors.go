package errors

import (
	"errors"
	"fmt"
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
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Rule errors
	ErrRuleInvalid  ErrorCode = "RULE_INVALID"
	ErrRuleNotFound ErrorCode = "RULE_NOT_FOUND"

	// Source directory errors
	ErrSourceInvalid ErrorCode = "SOURCE_INVALID"
	ErrSourceRead    ErrorCode = "SOURCE_READ"

	// Plan file errors
	ErrPlanExists  ErrorCode = "PLAN_EXISTS"
	ErrPlanOpen    ErrorCode = "PLAN_OPEN"
	ErrPlanInvalid ErrorCode = "PLAN_INVALID"
	ErrPlanWrite   ErrorCode = "PLAN_WRITE"

	// Move errors
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrMoveFailed   ErrorCode = "MOVE_FAILED"
	ErrCopyFailed   ErrorCode = "COPY_FAILED"
	ErrCopyMismatch ErrorCode = "COPY_MISMATCH"
	ErrRemoveFailed ErrorCode = "REMOVE_FAILED"

	// Journal errors
	ErrJournal ErrorCode = "JOURNAL"
)

// FsorgError represents a structured error with code and details
type FsorgError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FsorgError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FsorgError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FsorgError) Is(target error) bool {
	var targetErr *FsorgError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FsorgError with the given code and message
func New(code ErrorCode, message string) *FsorgError {
	return &FsorgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FsorgError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FsorgError {
	return &FsorgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FsorgError
func Wrap(err error, code ErrorCode, message string) *FsorgError {
	if err == nil {
		return nil
	}
	return &FsorgError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FsorgError {
	if err == nil {
		return nil
	}
	return &FsorgError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FsorgError) WithDetail(key string, value interface{}) *FsorgError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fsorgErr *FsorgError
	if errors.As(err, &fsorgErr) {
		return fsorgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FsorgError
func GetErrorCode(err error) ErrorCode {
	var fsorgErr *FsorgError
	if errors.As(err, &fsorgErr) {
		return fsorgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a FsorgError
func GetErrorDetails(err error) map[string]interface{} {
	var fsorgErr *FsorgError
	if errors.As(err, &fsorgErr) {
		return fsorgErr.Details
	}
	return nil
}
