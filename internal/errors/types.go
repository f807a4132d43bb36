package errors

import (
	"fmt"
)

// ErrorType is the category of an AppError. The CLI picks its user message
// from the category alone.
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	// ErrorTypeTimeout: the timer lock or a deadline ran out
	ErrorTypeTimeout
	// ErrorTypeConflict: a timer already in the requested state, a stale
	// task version, or a task number shared by several tasks
	ErrorTypeConflict
	// ErrorTypeMalformedLog: a stored time log that cannot be decoded, or
	// whose durations do not fit in int64 seconds
	ErrorTypeMalformedLog
	// ErrorTypeNegativeDuration: an interval that ends before it starts
	ErrorTypeNegativeDuration
)

// String returns the snake_case name used in error text
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeDatabase:
		return "database"
	case ErrorTypeInvalidInput:
		return "invalid_input"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeConflict:
		return "conflict"
	case ErrorTypeMalformedLog:
		return "malformed_log"
	case ErrorTypeNegativeDuration:
		return "negative_duration"
	default:
		return "unknown"
	}
}

// AppError is the error every layer below the CLI returns. Context carries
// machine-readable details such as a task's current_version or the index of
// a bad interval.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so callers can
// compare against a template such as &AppError{Type: ErrorTypeConflict, Code: "CONFLICT"}.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}

// IsType checks if this error is of the specified type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithContext records a detail such as "index" or "current_version" and
// returns e for chaining off a constructor
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetContext looks up a detail recorded with WithContext
func (e *AppError) GetContext(key string) (interface{}, bool) {
	if e.Context == nil {
		return nil, false
	}
	value, exists := e.Context[key]
	return value, exists
}
