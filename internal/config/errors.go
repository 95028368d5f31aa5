package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned for app config files that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field string // Field name
	Value string // Invalid value
	Err   error  // Underlying error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s (%q): %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError
func NewFieldError(field, value string, err error) *FieldError {
	return &FieldError{
		Field: field,
		Value: value,
		Err:   err,
	}
}
