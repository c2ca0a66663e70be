package policy

import (
	"time"

	"github.com/aponysus/reprise/report"
)

// Option configures a Policy built with New.
type Option func(*Policy)

// WithName labels the call for logs, metrics and reports.
func WithName(name string) Option {
	return func(p *Policy) { p.Name = name }
}

// WithMaxRetries sets the retry budget after the first attempt.
func WithMaxRetries(n int) Option {
	return func(p *Policy) { p.MaxRetries = n }
}

// WithBaseDelay sets the wait between attempts.
func WithBaseDelay(d time.Duration) Option {
	return func(p *Policy) { p.BaseDelay = d }
}

// WithExponentialBackoff scales successive waits to linear multiples of the
// base delay (1x, 2x, 3x, ...).
func WithExponentialBackoff() Option {
	return func(p *Policy) { p.ExponentialBackoff = true }
}

// WithRetryOnError sets the predicate deciding whether a failed invocation
// is retried.
func WithRetryOnError(pred func(error) bool) Option {
	return func(p *Policy) { p.RetryOnError = pred }
}

// WithRetryOnResult sets the predicate flagging successful results to retry.
func WithRetryOnResult(pred func(any) bool) Option {
	return func(p *Policy) { p.RetryOnResult = pred }
}

// WithTimeout sets the wall-clock budget for the whole sequence of attempts.
func WithTimeout(d time.Duration) Option {
	return func(p *Policy) { p.Timeout = d }
}

// WithOnComplete registers the completion hook receiving the final report.
func WithOnComplete(fn func(report.Report)) Option {
	return func(p *Policy) { p.OnComplete = fn }
}

// WithoutSanitization embeds retry-reason values verbatim.
func WithoutSanitization() Option {
	return func(p *Policy) { p.DisableSanitization = true }
}

// WithSanitizationThreshold overrides the serialized-size limit for
// retry-reason values.
func WithSanitizationThreshold(n int) Option {
	return func(p *Policy) { p.SanitizationThreshold = n }
}
