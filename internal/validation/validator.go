package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"task-timelog/internal/config"
)

const (
	defaultDescriptionMaxLength = 1000
	defaultMaxRate              = 100000
	numberMaxLength             = 64
)

var numberPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/#-]*$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks that the trimmed string has between min and max characters
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTaskID checks if a task ID is a UUID
func (v *Validator) IsValidTaskID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// IsValidNumber checks a task number such as "T-12" or "2024/07"
func (v *Validator) IsValidNumber(number string) bool {
	return len(number) <= numberMaxLength && numberPattern.MatchString(number)
}

// IsValidRate checks that an hourly rate is neither negative nor above the configured maximum
func (v *Validator) IsValidRate(rate float64) bool {
	return rate >= 0 && rate <= v.MaxRate()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// DescriptionMaxLength returns configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return defaultDescriptionMaxLength
}

// MaxRate returns configured maximum hourly rate or default
func (v *Validator) MaxRate() float64 {
	if v.config != nil {
		return v.config.Validation.MaxRate
	}
	return defaultMaxRate
}
