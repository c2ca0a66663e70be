package report

import (
	"errors"
	"fmt"
)

// ErrInvalidReport matches any *ValidationError via errors.Is.
var ErrInvalidReport = errors.New("reprise: invalid report")

// ValidationError indicates a report violated a final invariant when built.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("reprise: invalid report: %s=%v", e.Field, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidReport
}
