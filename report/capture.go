package report

import (
	"context"
	"sync/atomic"
)

// Capture holds the finished report of a call that requested capture.
//
// Report returns nil until the call completes.
type Capture struct {
	rep atomic.Pointer[Report]
}

// Report returns the captured report, or nil if the call has not completed.
// Safe for concurrent use.
func (c *Capture) Report() *Report {
	if c == nil {
		return nil
	}
	return c.rep.Load()
}

func (c *Capture) store(rep *Report) {
	if c == nil || rep == nil {
		return
	}
	c.rep.Store(rep)
}

type captureKey struct{}

// Record returns a derived context that requests report capture for the next
// retry call, plus the holder the finished report will be published into.
func Record(ctx context.Context) (context.Context, *Capture) {
	if ctx == nil {
		ctx = context.Background()
	}
	capture := &Capture{}
	return context.WithValue(ctx, captureKey{}, capture), capture
}

// FromContext returns the capture requested on ctx, if any.
//
// This is primarily used by the retry executor.
func FromContext(ctx context.Context) (*Capture, bool) {
	if ctx == nil {
		return nil, false
	}
	switch v := ctx.Value(captureKey{}).(type) {
	case *Capture:
		return v, v != nil
	default:
		return nil, false
	}
}

type disabledCapture struct{}

// WithoutCapture disables report capture in derived contexts. The executor
// uses it for the context passed to the operation, so nested retry calls
// cannot accidentally publish into the outer call's capture.
func WithoutCapture(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, captureKey{}, disabledCapture{})
}

// Store publishes the finished report into the capture.
//
// This is primarily used by the retry executor.
func Store(capture *Capture, rep *Report) {
	if capture == nil {
		return
	}
	capture.store(rep)
}
