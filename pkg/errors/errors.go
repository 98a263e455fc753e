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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Registration errors
	ErrInvalidStore          ErrorCode = "INVALID_STORE"
	ErrInvalidDomain         ErrorCode = "INVALID_DOMAIN"
	ErrMissingName           ErrorCode = "MISSING_NAME"
	ErrDuplicateRegistration ErrorCode = "DUPLICATE_REGISTRATION"

	// Dispatch errors
	ErrInvalidAction      ErrorCode = "INVALID_ACTION"
	ErrDispatchInProgress ErrorCode = "DISPATCH_IN_PROGRESS"
	ErrDispatchNotRunning ErrorCode = "DISPATCH_NOT_RUNNING"
	ErrStoreNotFound      ErrorCode = "STORE_NOT_FOUND"
	ErrHandlerNotFound    ErrorCode = "HANDLER_NOT_FOUND"
	ErrHandlerFailed      ErrorCode = "HANDLER_FAILED"
	ErrCircularWait       ErrorCode = "CIRCULAR_WAIT"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigValid   ErrorCode = "CONFIG_INVALID"
	ErrManifestValid ErrorCode = "MANIFEST_INVALID"
)

// DispatchError represents a structured error with code and details
type DispatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DispatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DispatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DispatchError) Is(target error) bool {
	var targetErr *DispatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DispatchError with the given code and message
func New(code ErrorCode, message string) *DispatchError {
	return &DispatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DispatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DispatchError {
	return &DispatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DispatchError
func Wrap(err error, code ErrorCode, message string) *DispatchError {
	if err == nil {
		return nil
	}
	return &DispatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DispatchError {
	if err == nil {
		return nil
	}
	return &DispatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DispatchError) WithDetail(key string, value interface{}) *DispatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// Only the outermost DispatchError in the chain is considered.
func IsErrorCode(err error, code ErrorCode) bool {
	var dispatchErr *DispatchError
	if errors.As(err, &dispatchErr) {
		return dispatchErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any DispatchError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var dispatchErr *DispatchError
		if !errors.As(err, &dispatchErr) {
			return false
		}
		if dispatchErr.Code == code {
			return true
		}
		err = dispatchErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DispatchError
func GetErrorCode(err error) ErrorCode {
	var dispatchErr *DispatchError
	if errors.As(err, &dispatchErr) {
		return dispatchErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DispatchError
func GetErrorDetails(err error) map[string]interface{} {
	var dispatchErr *DispatchError
	if errors.As(err, &dispatchErr) {
		return dispatchErr.Details
	}
	return nil
}
