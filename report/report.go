// Package report defines the immutable audit record produced by every retry
// call, and the copy-on-write Builder the executor accumulates it through.
package report

import "time"

// ReasonKind tags why an additional attempt was scheduled.
type ReasonKind string

const (
	// ReasonError marks a retry decided from a failed invocation.
	ReasonError ReasonKind = "error"
	// ReasonResult marks a retry decided from a successful invocation whose
	// result the policy flagged as retryable.
	ReasonResult ReasonKind = "result"
)

// RetryReason is one recorded decision to retry. Value may have been
// sanitized per the policy and is always safe to log or serialize.
type RetryReason struct {
	Kind  ReasonKind `json:"kind"`
	Value any        `json:"value"`
}

// Report is the finalized audit record of a single retry call. Once returned
// by Builder.Build it is never mutated.
type Report struct {
	// ID correlates log lines, metrics and the report of one call.
	ID string `json:"id"`

	// Policy is the optional policy name, for diagnostics.
	Policy string `json:"policy,omitempty"`

	StartTime time.Time     `json:"start_time"`
	TotalTime time.Duration `json:"total_time"`

	// Attempts counts operation invocations attempted, including one counted
	// for a timeout detected before the invocation could start.
	Attempts int `json:"attempts"`

	// Errors holds one entry per failed invocation, in chronological order.
	Errors []error `json:"-"`

	// Delays holds one entry per wait actually scheduled between attempts.
	Delays []time.Duration `json:"delays,omitempty"`

	Succeeded bool `json:"succeeded"`
	TimedOut  bool `json:"timed_out,omitempty"`

	// Reasons holds one entry per decision to retry, in order.
	Reasons []RetryReason `json:"retry_reasons,omitempty"`
}

// LastError returns the most recently recorded error, or nil when no
// invocation has failed.
func (r Report) LastError() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[len(r.Errors)-1]
}
