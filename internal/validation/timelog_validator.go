package validation

import (
	"fmt"

	"task-timelog/internal/timelog"
)

// TimeLogValidator checks the structural rules of a decoded time log:
// the running flag agrees with the stop timestamp, a stop never precedes
// its start, and only the final interval may be open.
type TimeLogValidator struct{}

// NewTimeLogValidator creates a new time log validator
func NewTimeLogValidator() *TimeLogValidator {
	return &TimeLogValidator{}
}

// ValidateSerialized decodes and validates a stored time log
func (lv *TimeLogValidator) ValidateSerialized(serialized string) error {
	log, err := timelog.Decode(serialized)
	if err != nil {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("time_log", serialized, "JSON array of [start, stop, note, isRunning] tuples")
		return validationError
	}
	return lv.ValidateLog(log)
}

// ValidateLog reports every rule violation in log
func (lv *TimeLogValidator) ValidateLog(log timelog.Log) error {
	validationError := NewValidationError()
	open := 0

	for i, iv := range log {
		field := fmt.Sprintf("time_log[%d]", i)

		if iv.Start < 0 || iv.Stop < 0 {
			validationError.AddInvalidValueError(field, iv, "timestamps cannot be negative")
			continue
		}
		if iv.Start == 0 && iv.Stop != 0 {
			validationError.AddInconsistentStateError(field, iv, "stopped without a start")
			continue
		}
		if iv.IsRunning != (iv.Stop == 0) {
			validationError.AddInconsistentStateError(field, iv, "running flag disagrees with the stop time")
		}

		switch iv.State() {
		case timelog.Closed:
			if iv.Stop < iv.Start {
				validationError.AddInvalidRangeError(field, iv, "stop is before start")
			}
		case timelog.Running:
			open++
			if i != len(log)-1 {
				validationError.AddInconsistentStateError(field, iv, "only the last interval may be open")
			}
		}
	}

	if open > 1 {
		validationError.AddInconsistentStateError("time_log", open, fmt.Sprintf("%d intervals are open, at most one is allowed", open))
	}

	return validationError.OrNil()
}
