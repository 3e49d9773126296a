// Package validation provides field-level request validation helpers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateRequired returns an error if the value is empty after trimming.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: "is required",
		}
	}
	return nil
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", max),
		}
	}
	return nil
}

// ValidateOneOf returns an error if the value is not in the allowed set.
// Empty values pass; pair with ValidateRequired when the field is mandatory.
func ValidateOneOf(field, value string, allowed ...string) *ValidationError {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// hourSlotPattern matches delivery times on the hour, e.g. "08:00" or "17:00".
var hourSlotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):00$`)

// ValidateHourSlot returns an error if the value is not an "HH:00" time.
// Empty values pass.
func ValidateHourSlot(field, value string) *ValidationError {
	if value == "" {
		return nil
	}
	if !hourSlotPattern.MatchString(value) {
		return &ValidationError{
			Field:   field,
			Message: `must be a time on the hour in "HH:00" form`,
		}
	}
	return nil
}
