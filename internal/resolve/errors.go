package resolve

import (
	"fmt"
)

// PatternError records a file system failure while expanding a pattern.
// It is never returned for invalid or unmatched patterns.
type PatternError struct {
	Err     error
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("expanding pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// NewPatternError creates a new PatternError
func NewPatternError(pattern string, err error) *PatternError {
	return &PatternError{
		Pattern: pattern,
		Err:     err,
	}
}
