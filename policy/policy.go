// Package policy defines the configuration governing a single retry call:
// attempt budget, backoff, retry predicates, time budget and report hygiene.
package policy

import (
	"time"

	"github.com/aponysus/reprise/report"
	"github.com/aponysus/reprise/sanitize"
)

// Policy configures one retry call. It is treated as immutable for the
// duration of the call; the executor never modifies it. The zero value is
// valid and means "invoke once, never retry, sanitize reasons at the
// default threshold".
type Policy struct {
	// Name optionally labels the call in logs, metrics and reports.
	Name string

	// MaxRetries is the number of retries after the first attempt, so the
	// operation is invoked at most MaxRetries+1 times.
	MaxRetries int

	// BaseDelay is the wait between attempts. With ExponentialBackoff set,
	// successive retries wait BaseDelay, 2*BaseDelay, 3*BaseDelay, and so
	// on; otherwise every wait is BaseDelay.
	BaseDelay time.Duration

	// ExponentialBackoff enables the linearly increasing multiples of
	// BaseDelay described above.
	ExponentialBackoff bool

	// RetryOnError decides whether a failed invocation is retried.
	// Nil means retry on any error.
	RetryOnError func(error) bool

	// RetryOnResult flags successful results that should be retried anyway
	// (e.g. a "pending" status). Nil means never retry on a result.
	RetryOnResult func(any) bool

	// Timeout is the wall-clock budget for the entire sequence of attempts.
	// Zero means no deadline.
	Timeout time.Duration

	// OnComplete, when set, receives the finalized report exactly once,
	// synchronously, before the call returns - on success, failure and
	// timeout alike (but not on policy validation failure, which terminates
	// before a report exists).
	OnComplete func(report.Report)

	// DisableSanitization embeds retry-reason values into the report
	// verbatim instead of size-bounding them.
	DisableSanitization bool

	// SanitizationThreshold is the serialized-size limit above which
	// retry-reason values are replaced by a placeholder. Zero means unset
	// and falls back to sanitize.DefaultThreshold.
	SanitizationThreshold int
}

// New builds a Policy from options. The zero Policy is equally usable as a
// literal; New exists for call sites that prefer the option form.
func New(opts ...Option) Policy {
	var p Policy
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Validate rejects malformed configuration before any attempt is made.
// It fails with a *ConfigurationError (matching ErrInvalidPolicy) and has
// no side effects.
func (p Policy) Validate() error {
	if p.MaxRetries < 0 {
		return &ConfigurationError{Field: "max_retries", Value: p.MaxRetries}
	}
	if p.BaseDelay < 0 {
		return &ConfigurationError{Field: "base_delay", Value: p.BaseDelay}
	}
	if p.Timeout < 0 {
		return &ConfigurationError{Field: "timeout", Value: p.Timeout}
	}
	if p.SanitizationThreshold < 0 {
		return &ConfigurationError{Field: "sanitization_threshold", Value: p.SanitizationThreshold}
	}
	return nil
}

// Threshold returns the effective sanitization threshold.
func (p Policy) Threshold() int {
	if p.SanitizationThreshold > 0 {
		return p.SanitizationThreshold
	}
	return sanitize.DefaultThreshold
}
