// Package clock abstracts the time source used by the retry executor.
//
// The executor only needs two capabilities: a monotonic "now" and a
// cancellable sleep. Production code uses System; tests inject a Manual
// clock to drive the loop without real delays.
package clock

import (
	"context"
	"time"
)

// Clock supplies the current time and an asynchronous delay primitive.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case. A non-positive d returns immediately.
	Sleep(ctx context.Context, d time.Duration) error
}

// System returns a Clock backed by the real time package.
func System() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)

	defer func() {
		if !timer.Stop() {
			select {
			case <-timer.C: // drain any pending tick so the channel doesn't retain value
			default:
			}
		}
	}()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
