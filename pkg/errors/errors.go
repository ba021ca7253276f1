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

	// Environment errors
	ErrEnvNotFound   ErrorCode = "ENV_NOT_FOUND"
	ErrEnvExists     ErrorCode = "ENV_EXISTS"
	ErrEnvActive     ErrorCode = "ENV_ACTIVE"
	ErrCyclicBase    ErrorCode = "CYCLIC_BASE"

	// Configuration errors
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// Plugin errors
	ErrPluginNotFound ErrorCode = "PLUGIN_NOT_FOUND"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrLinkConflict  ErrorCode = "LINK_CONFLICT"
	ErrStateWrite    ErrorCode = "STATE_WRITE"
)

// EnvmgrError represents a structured error with code and details
type EnvmgrError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *EnvmgrError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *EnvmgrError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *EnvmgrError) Is(target error) bool {
	var targetErr *EnvmgrError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new EnvmgrError with the given code and message
func New(code ErrorCode, message string) *EnvmgrError {
	return &EnvmgrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new EnvmgrError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *EnvmgrError {
	return &EnvmgrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an EnvmgrError
func Wrap(err error, code ErrorCode, message string) *EnvmgrError {
	if err == nil {
		return nil
	}
	return &EnvmgrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *EnvmgrError {
	if err == nil {
		return nil
	}
	return &EnvmgrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *EnvmgrError) WithDetail(key string, value interface{}) *EnvmgrError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var envErr *EnvmgrError
	if errors.As(err, &envErr) {
		return envErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an EnvmgrError
func GetErrorCode(err error) ErrorCode {
	var envErr *EnvmgrError
	if errors.As(err, &envErr) {
		return envErr.Code
	}
	return ErrUnknown
}
