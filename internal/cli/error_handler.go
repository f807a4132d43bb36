package cli

import (
	"fmt"

	"task-timelog/internal/errors"
	"task-timelog/internal/logging"
	"task-timelog/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("%s failed: %v\n", operation, err)
	}

	if message, ok := eh.userMessage(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, message)
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if message, ok := eh.userMessage(err); ok {
		return fmt.Errorf("%s", message)
	}
	return err
}

// userMessage prefers the field details of a validation failure over the
// wrapping AppError's summary.
func (eh *ErrorHandler) userMessage(err error) (string, bool) {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage(), true
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		return "", false
	}
	message := errors.GetUserMessage(err)
	if appErr.Type == errors.ErrorTypeValidation && appErr.Cause != nil {
		if detail, ok := appErr.Cause.(*validation.ValidationError); ok {
			message += ": " + detail.GetUserFriendlyMessage()
		}
	}
	return message, true
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsConflictError checks if an error is a conflict error
func (eh *ErrorHandler) IsConflictError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeConflict)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeDatabase)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
