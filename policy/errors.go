package policy

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy matches any *ConfigurationError via errors.Is.
var ErrInvalidPolicy = errors.New("reprise: invalid policy")

// ConfigurationError indicates a malformed policy. It is a caller bug:
// the operation is never invoked and no report is produced.
type ConfigurationError struct {
	Field string
	Value any
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reprise: invalid policy: %s=%v", e.Field, e.Value)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidPolicy
}
