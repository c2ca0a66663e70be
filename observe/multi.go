package observe

import (
	"context"
	"time"

	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
)

// MultiObserver fans out events to multiple observers. Nil entries are
// skipped.
type MultiObserver struct {
	Observers []Observer
}

func (m MultiObserver) OnStart(ctx context.Context, pol policy.Policy) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnStart(ctx, pol)
		}
	}
}

func (m MultiObserver) OnAttempt(ctx context.Context, rec AttemptRecord) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnAttempt(ctx, rec)
		}
	}
}

func (m MultiObserver) OnRetry(ctx context.Context, rec AttemptRecord, reason report.RetryReason, delay time.Duration) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnRetry(ctx, rec, reason, delay)
		}
	}
}

func (m MultiObserver) OnSuccess(ctx context.Context, rep report.Report) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnSuccess(ctx, rep)
		}
	}
}

func (m MultiObserver) OnFailure(ctx context.Context, rep report.Report) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnFailure(ctx, rep)
		}
	}
}
