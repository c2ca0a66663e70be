package retry

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout matches any *TimeoutError via errors.Is.
	ErrTimeout = errors.New("reprise: retry deadline exceeded")

	// ErrAttemptsExceeded matches any *AttemptsExceededError via errors.Is.
	ErrAttemptsExceeded = errors.New("reprise: retry attempts exhausted")
)

// TimeoutError reports that a call's wall-clock deadline passed before the
// operation settled. Cause is the most recent recorded error, if any.
type TimeoutError struct {
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("reprise: operation timed out after %s: %s", e.Timeout, e.Cause)
	}
	return fmt.Sprintf("reprise: operation timed out after %s", e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// AttemptsExceededError reports that a retryable failure occurred with no
// retries left. Cause is the error from the final attempt.
type AttemptsExceededError struct {
	MaxRetries int
	Cause      error
}

func (e *AttemptsExceededError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("reprise: max retries (%d) exceeded: %s", e.MaxRetries, e.Cause)
	}
	return fmt.Sprintf("reprise: max retries (%d) exceeded", e.MaxRetries)
}

func (e *AttemptsExceededError) Unwrap() error { return e.Cause }

func (e *AttemptsExceededError) Is(target error) bool { return target == ErrAttemptsExceeded }

// PanicError wraps a panic recovered from an operation when the executor
// runs with panic recovery enabled.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("reprise: operation panicked: %v", e.Value)
}
