package validation

import (
	"fmt"

	"task-timelog/internal/config"
	"task-timelog/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator    *Validator
	logValidator *TimeLogValidator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator:    NewValidator(),
		logValidator: NewTimeLogValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator:    NewValidatorWithConfig(cfg),
		logValidator: NewTimeLogValidator(),
	}
}

// ValidateNumber validates an optional task number
func (tv *TaskValidator) ValidateNumber(number string) error {
	trimmed := tv.validator.TrimAndValidateString(number)
	if trimmed == "" {
		return nil
	}

	validationError := NewValidationError()
	if !tv.validator.IsValidNumber(trimmed) {
		validationError.AddInvalidFormatError("number", trimmed,
			fmt.Sprintf("letters, digits and . _ / # - (at most %d characters)", numberMaxLength))
	}
	return validationError.OrNil()
}

// ValidateDescription validates an optional description against the length limit
func (tv *TaskValidator) ValidateDescription(description string) error {
	maxLen := tv.validator.DescriptionMaxLength()
	if tv.validator.IsValidStringLength(description, 0, maxLen) {
		return nil
	}

	validationError := NewValidationError()
	validationError.AddInvalidLengthError("description", description, 0, maxLen)
	return validationError
}

// ValidateRate validates an hourly rate
func (tv *TaskValidator) ValidateRate(rate float64) error {
	if tv.validator.IsValidRate(rate) {
		return nil
	}

	validationError := NewValidationError()
	validationError.AddInvalidRangeError("rate", rate,
		fmt.Sprintf("must be between 0 and %g", tv.validator.MaxRate()))
	return validationError
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if tv.validator.IsValidTaskID(id) {
		return nil
	}

	validationError := NewValidationError()
	if !tv.validator.IsNonEmptyString(id) {
		validationError.AddRequiredError("task_id")
	} else {
		validationError.AddInvalidFormatError("task_id", id, "UUID")
	}
	return validationError
}

// ValidateTaskForCreation validates the user-supplied fields of a new task.
// A task needs a number or a description to be identifiable.
func (tv *TaskValidator) ValidateTaskForCreation(number, description string, rate float64) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(number) && !tv.validator.IsNonEmptyString(description) {
		validationError.AddRequiredError("description")
	}
	validationError.Merge("number", tv.ValidateNumber(number))
	validationError.Merge("description", tv.ValidateDescription(description))
	validationError.Merge("rate", tv.ValidateRate(rate))

	return validationError.OrNil()
}

// ValidateTask validates a complete domain.Task, including its time log
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	validationError.Merge("task_id", tv.ValidateTaskID(task.ID))
	validationError.Merge("task", tv.ValidateTaskForCreation(task.Number, task.Description, task.Rate))
	validationError.Merge("time_log", tv.logValidator.ValidateSerialized(task.TimeLog))

	return validationError.OrNil()
}

// GetValidDescription returns a cleaned description if valid
func (tv *TaskValidator) GetValidDescription(description string) (string, error) {
	if err := tv.ValidateDescription(description); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(description), nil
}
