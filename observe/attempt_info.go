package observe

import "context"

type attemptInfoKey struct{}

// AttemptInfo is per-attempt metadata the executor attaches to the context
// passed to the operation, so the operation (and anything it calls) can tell
// which attempt it is serving.
type AttemptInfo struct {
	// Attempt is the 1-based invocation ordinal.
	Attempt int

	// Policy is the policy name, possibly empty.
	Policy string

	// ReportID is the correlation id of the call's report.
	ReportID string
}

// WithAttemptInfo returns a context derived from ctx that carries info.
func WithAttemptInfo(ctx context.Context, info AttemptInfo) context.Context {
	return context.WithValue(ctx, attemptInfoKey{}, info)
}

// AttemptFromContext returns the AttemptInfo from ctx, if present.
func AttemptFromContext(ctx context.Context) (AttemptInfo, bool) {
	info, ok := ctx.Value(attemptInfoKey{}).(AttemptInfo)
	return info, ok
}
