package report

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Builder accumulates a Report as a persistent value: every With method
// returns a new Builder wrapping an updated copy, and never mutates the
// receiver or any previously returned Builder. This makes it safe to carry
// through the retry loop (and to branch in tests) without aliasing hazards.
type Builder struct {
	rep Report
}

// NewBuilder starts a report for one retry call. policyName may be empty.
func NewBuilder(policyName string, start time.Time) Builder {
	return Builder{rep: Report{
		ID:        uuid.NewString(),
		Policy:    policyName,
		StartTime: start,
	}}
}

// WithAttempt counts one attempt slot.
func (b Builder) WithAttempt() Builder {
	b.rep.Attempts++
	return b
}

// WithError appends a failed invocation's error.
func (b Builder) WithError(err error) Builder {
	b.rep.Errors = append(slices.Clone(b.rep.Errors), err)
	return b
}

// WithDelay appends a scheduled inter-attempt wait.
func (b Builder) WithDelay(d time.Duration) Builder {
	b.rep.Delays = append(slices.Clone(b.rep.Delays), d)
	return b
}

// WithRetryReason appends a recorded decision to retry.
func (b Builder) WithRetryReason(reason RetryReason) Builder {
	b.rep.Reasons = append(slices.Clone(b.rep.Reasons), reason)
	return b
}

// WithSuccess marks the call succeeded at now.
func (b Builder) WithSuccess(now time.Time) Builder {
	b.rep.Succeeded = true
	b.rep.TotalTime = now.Sub(b.rep.StartTime)
	return b
}

// WithTimeout marks the call's deadline exceeded at now.
func (b Builder) WithTimeout(now time.Time) Builder {
	b.rep.Succeeded = false
	b.rep.TimedOut = true
	b.rep.TotalTime = now.Sub(b.rep.StartTime)
	return b
}

// WithFailure marks the call failed at now.
func (b Builder) WithFailure(now time.Time) Builder {
	b.rep.Succeeded = false
	b.rep.TotalTime = now.Sub(b.rep.StartTime)
	return b
}

// ID returns the report's correlation id, assigned at NewBuilder.
func (b Builder) ID() string {
	return b.rep.ID
}

// LastError returns the most recently recorded error, or nil.
func (b Builder) LastError() error {
	return b.rep.LastError()
}

// Build validates the accumulated report and freezes it. It fails with a
// *ValidationError when TotalTime or Attempts is negative; through normal
// executor use that is unreachable, the check guards reports constructed
// by hand.
func (b Builder) Build() (Report, error) {
	if b.rep.TotalTime < 0 {
		return Report{}, &ValidationError{Field: "total_time", Value: b.rep.TotalTime}
	}
	if b.rep.Attempts < 0 {
		return Report{}, &ValidationError{Field: "attempts", Value: b.rep.Attempts}
	}

	rep := b.rep
	rep.Errors = slices.Clone(rep.Errors)
	rep.Delays = slices.Clone(rep.Delays)
	rep.Reasons = slices.Clone(rep.Reasons)
	return rep, nil
}
