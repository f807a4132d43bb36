package validation

import (
	"strings"
	"testing"

	"task-timelog/internal/config"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		input    string
		expected bool
	}{
		{"task", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := v.IsNonEmptyString(tt.input); got != tt.expected {
			t.Errorf("IsNonEmptyString(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestValidator_IsValidStringLength(t *testing.T) {
	v := NewValidator()

	if !v.IsValidStringLength("  café  ", 4, 4) {
		t.Error("IsValidStringLength should count trimmed runes")
	}
	if v.IsValidStringLength("abcdef", 0, 5) {
		t.Error("IsValidStringLength should reject strings over max")
	}
	if !v.IsValidStringLength("", 0, 5) {
		t.Error("IsValidStringLength should accept an empty string when min is 0")
	}
}

func TestValidator_IsValidTaskID(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		id       string
		expected bool
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"9B2E7A10-3C4D-4E5F-8A9B-0C1D2E3F4A5B", true},
		{"", false},
		{"42", false},
		{"6ba7b810-9dad-11d1-80b4", false},
	}

	for _, tt := range tests {
		if got := v.IsValidTaskID(tt.id); got != tt.expected {
			t.Errorf("IsValidTaskID(%q) = %v, expected %v", tt.id, got, tt.expected)
		}
	}
}

func TestValidator_IsValidNumber(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		number   string
		expected bool
	}{
		{"T-12", true},
		{"2024/07", true},
		{"INV#3.1_a", true},
		{"-leading", false},
		{"has space", false},
		{"", false},
		{strings.Repeat("a", 64), true},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		if got := v.IsValidNumber(tt.number); got != tt.expected {
			t.Errorf("IsValidNumber(%q) = %v, expected %v", tt.number, got, tt.expected)
		}
	}
}

func TestValidator_IsValidRate(t *testing.T) {
	v := NewValidator()

	for _, rate := range []float64{0, 0.5, 150, defaultMaxRate} {
		if !v.IsValidRate(rate) {
			t.Errorf("IsValidRate(%v) should be true", rate)
		}
	}
	for _, rate := range []float64{-0.01, defaultMaxRate + 1} {
		if v.IsValidRate(rate) {
			t.Errorf("IsValidRate(%v) should be false", rate)
		}
	}
}

func TestValidator_UsesConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.DescriptionMaxLength = 5
	cfg.Validation.MaxRate = 10

	v := NewValidatorWithConfig(cfg)

	if v.DescriptionMaxLength() != 5 {
		t.Errorf("DescriptionMaxLength() = %d, expected 5", v.DescriptionMaxLength())
	}
	if v.IsValidRate(11) {
		t.Error("IsValidRate(11) should respect the configured maximum")
	}

	defaults := NewValidator()
	if defaults.DescriptionMaxLength() != defaultDescriptionMaxLength || defaults.MaxRate() != defaultMaxRate {
		t.Error("a validator without config should use the defaults")
	}
}
