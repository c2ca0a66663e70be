// Package observe defines lifecycle callbacks for retry calls, for wiring
// metrics, tracing or custom diagnostics without touching the engine.
package observe

import (
	"context"
	"time"

	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
)

// AttemptRecord describes a single invocation of the retried operation.
type AttemptRecord struct {
	// Policy is the policy name, possibly empty.
	Policy string

	// Attempt is the 1-based invocation ordinal.
	Attempt int

	StartTime time.Time
	EndTime   time.Time

	// Err is the invocation's error, nil on success.
	Err error
}

// Observer receives lifecycle callbacks for a single retry call. Callbacks
// run synchronously on the calling goroutine; implementations should return
// quickly.
type Observer interface {
	OnStart(ctx context.Context, pol policy.Policy)
	OnAttempt(ctx context.Context, rec AttemptRecord)

	// OnRetry fires once per decision to retry, before the delay is awaited.
	OnRetry(ctx context.Context, rec AttemptRecord, reason report.RetryReason, delay time.Duration)

	OnSuccess(ctx context.Context, rep report.Report)

	// OnFailure fires for failed and timed-out calls alike; rep.TimedOut
	// distinguishes them.
	OnFailure(ctx context.Context, rep report.Report)
}

// NoopObserver implements Observer with no-op methods.
type NoopObserver struct{}

func (NoopObserver) OnStart(context.Context, policy.Policy)    {}
func (NoopObserver) OnAttempt(context.Context, AttemptRecord)  {}
func (NoopObserver) OnRetry(context.Context, AttemptRecord, report.RetryReason, time.Duration) {
}
func (NoopObserver) OnSuccess(context.Context, report.Report) {}
func (NoopObserver) OnFailure(context.Context, report.Report) {}

// BaseObserver implements Observer with no-op methods.
//
// Users can embed BaseObserver to implement only the callbacks they need.
type BaseObserver struct{}

func (BaseObserver) OnStart(context.Context, policy.Policy)    {}
func (BaseObserver) OnAttempt(context.Context, AttemptRecord)  {}
func (BaseObserver) OnRetry(context.Context, AttemptRecord, report.RetryReason, time.Duration) {
}
func (BaseObserver) OnSuccess(context.Context, report.Report) {}
func (BaseObserver) OnFailure(context.Context, report.Report) {}
