// Package retry implements the attempt engine: it repeatedly invokes an
// operation under a policy until it succeeds, is judged non-retryable,
// exhausts its attempt budget or exceeds its wall-clock deadline, producing
// a structured report of everything that happened along the way.
package retry

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aponysus/reprise/clock"
	"github.com/aponysus/reprise/observe"
	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
	"github.com/aponysus/reprise/sanitize"
)

// Operation is a retryable operation without a result value.
type Operation func(ctx context.Context) error

// OperationValue is a retryable operation producing a value.
type OperationValue[T any] func(ctx context.Context) (T, error)

// Executor drives retry calls. It holds only read-only dependencies and is
// safe for concurrent use: every call owns its own deadline, counters and
// report builder.
type Executor struct {
	clock         clock.Clock
	logger        *slog.Logger
	observer      observe.Observer
	recoverPanics bool
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	Clock         clock.Clock
	Logger        *slog.Logger
	Observer      observe.Observer
	RecoverPanics bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*ExecutorOptions)

// WithClock sets the time source. Defaults to the system clock.
func WithClock(c clock.Clock) ExecutorOption {
	return func(o *ExecutorOptions) { o.Clock = c }
}

// WithLogger sets the diagnostic logger. Defaults to a discarding logger.
// Panics from the logger are swallowed; diagnostics never affect control flow.
func WithLogger(l *slog.Logger) ExecutorOption {
	return func(o *ExecutorOptions) { o.Logger = l }
}

// WithObserver sets the lifecycle observer.
func WithObserver(obs observe.Observer) ExecutorOption {
	return func(o *ExecutorOptions) { o.Observer = obs }
}

// WithRecoverPanics converts panics in the operation into a *PanicError
// flowing through the normal error path instead of unwinding the caller.
func WithRecoverPanics(recover bool) ExecutorOption {
	return func(o *ExecutorOptions) { o.RecoverPanics = recover }
}

// NewExecutor creates an Executor with default options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	var cfg ExecutorOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewExecutorFromOptions(cfg)
}

// NewExecutorFromOptions creates an Executor from a config struct.
func NewExecutorFromOptions(opts ExecutorOptions) *Executor {
	e := &Executor{
		clock:         opts.Clock,
		logger:        opts.Logger,
		observer:      opts.Observer,
		recoverPanics: opts.RecoverPanics,
	}
	return e.normalized()
}

func (e *Executor) normalized() *Executor {
	if e.clock != nil && e.logger != nil && e.observer != nil {
		return e
	}
	out := *e
	if out.clock == nil {
		out.clock = clock.System()
	}
	if out.logger == nil {
		out.logger = discardLogger
	}
	if out.observer == nil {
		out.observer = observe.NoopObserver{}
	}
	return &out
}

// Do executes op under pol, retrying per the policy.
func (e *Executor) Do(ctx context.Context, pol policy.Policy, op Operation) error {
	_, err := DoValue(ctx, e, pol, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// DoWithReport is Do, additionally returning the final report.
func (e *Executor) DoWithReport(ctx context.Context, pol policy.Policy, op Operation) (report.Report, error) {
	_, rep, err := DoValueWithReport(ctx, e, pol, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return rep, err
}

// DoValue executes op under pol, retrying per the policy, and returns the
// operation's value.
//
// It fails before any attempt with a *policy.ConfigurationError for an
// invalid policy; otherwise it returns the successful value or fails with
// a *TimeoutError, an *AttemptsExceededError, or the operation's own error
// unchanged when it was judged non-retryable.
func DoValue[T any](ctx context.Context, exec *Executor, pol policy.Policy, op OperationValue[T]) (T, error) {
	val, _, err := doValue(ctx, exec, pol, op)
	return val, err
}

// DoValueWithReport is DoValue, additionally returning the final report.
// The report is the zero Report when the policy failed validation.
func DoValueWithReport[T any](ctx context.Context, exec *Executor, pol policy.Policy, op OperationValue[T]) (T, report.Report, error) {
	return doValue(ctx, exec, pol, op)
}

func doValue[T any](ctx context.Context, exec *Executor, pol policy.Policy, op OperationValue[T]) (T, report.Report, error) {
	var zero T

	if ctx == nil {
		ctx = context.Background()
	}
	if exec == nil {
		exec = DefaultExecutor()
	}
	e := exec.normalized()

	if err := pol.Validate(); err != nil {
		return zero, report.Report{}, err
	}

	start := e.clock.Now()
	var deadline time.Time
	if pol.Timeout > 0 {
		deadline = start.Add(pol.Timeout)
	}

	b := report.NewBuilder(pol.Name, start)
	e.observer.OnStart(ctx, pol)
	e.log(ctx, LevelTrace, "retry call starting",
		slog.String("policy", pol.Name),
		slog.Int("max_retries", pol.MaxRetries),
		slog.Duration("timeout", pol.Timeout))

	retriesLeft := pol.MaxRetries
	invocations := 0

	for {
		b = b.WithAttempt()

		now := e.clock.Now()
		if !deadline.IsZero() && now.After(deadline) {
			// The deadline check runs before invoking the operation, so a
			// timeout consumes an attempt slot without an invocation.
			b = b.WithTimeout(now)
			cause := b.LastError()
			rep, ferr := e.finalize(ctx, pol, b)
			if ferr != nil {
				return zero, report.Report{}, ferr
			}
			e.observer.OnFailure(ctx, rep)
			e.log(ctx, slog.LevelDebug, "retry call timed out",
				slog.String("policy", pol.Name),
				slog.Int("attempts", rep.Attempts))
			return zero, rep, &TimeoutError{Timeout: pol.Timeout, Cause: cause}
		}

		invocations++
		opCtx := observe.WithAttemptInfo(report.WithoutCapture(ctx), observe.AttemptInfo{
			Attempt:  invocations,
			Policy:   pol.Name,
			ReportID: b.ID(),
		})
		e.log(ctx, LevelTrace, "attempt starting",
			slog.String("policy", pol.Name),
			slog.Int("attempt", invocations))

		val, err := invoke(e, opCtx, op)
		rec := observe.AttemptRecord{
			Policy:    pol.Name,
			Attempt:   invocations,
			StartTime: now,
			EndTime:   e.clock.Now(),
			Err:       err,
		}
		e.observer.OnAttempt(ctx, rec)

		if err == nil {
			if pol.RetryOnResult != nil && pol.RetryOnResult(val) && retriesLeft > 0 {
				reason := report.RetryReason{
					Kind:  report.ReasonResult,
					Value: sanitize.Value(val, !pol.DisableSanitization, pol.Threshold()),
				}
				var serr error
				b, serr = e.scheduleRetry(ctx, pol, b, rec, reason, retriesLeft)
				if serr != nil {
					rep, rerr := e.failCall(ctx, pol, b, serr)
					return zero, rep, rerr
				}
				retriesLeft--
				continue
			}

			// A retryable result with no retries left still resolves as a
			// success; exhaustion is an error only on the error path.
			b = b.WithSuccess(e.clock.Now())
			rep, ferr := e.finalize(ctx, pol, b)
			if ferr != nil {
				return zero, report.Report{}, ferr
			}
			e.observer.OnSuccess(ctx, rep)
			e.log(ctx, slog.LevelDebug, "retry call succeeded",
				slog.String("policy", pol.Name),
				slog.Int("attempts", rep.Attempts))
			return val, rep, nil
		}

		b = b.WithError(err)
		shouldRetry := pol.RetryOnError == nil || pol.RetryOnError(err)

		if !shouldRetry || retriesLeft <= 0 {
			terminal := err
			if shouldRetry && retriesLeft <= 0 {
				terminal = &AttemptsExceededError{MaxRetries: pol.MaxRetries, Cause: err}
			}
			rep, rerr := e.failCall(ctx, pol, b, terminal)
			return zero, rep, rerr
		}

		reason := report.RetryReason{
			Kind:  report.ReasonError,
			Value: sanitize.Value(err, !pol.DisableSanitization, pol.Threshold()),
		}
		var serr error
		b, serr = e.scheduleRetry(ctx, pol, b, rec, reason, retriesLeft)
		if serr != nil {
			rep, rerr := e.failCall(ctx, pol, b, serr)
			return zero, rep, rerr
		}
		retriesLeft--
	}
}

// scheduleRetry records the retry reason and its delay, notifies the
// observer, and awaits the delay. Zero delays are recorded but never slept.
func (e *Executor) scheduleRetry(ctx context.Context, pol policy.Policy, b report.Builder, rec observe.AttemptRecord, reason report.RetryReason, retriesLeft int) (report.Builder, error) {
	d := delayFor(pol, retriesLeft)
	b = b.WithRetryReason(reason).WithDelay(d)
	e.observer.OnRetry(ctx, rec, reason, d)
	e.log(ctx, slog.LevelDebug, "retrying",
		slog.String("policy", pol.Name),
		slog.String("reason", string(reason.Kind)),
		slog.Duration("delay", d),
		slog.Int("retries_left", retriesLeft))
	if d > 0 {
		if err := e.clock.Sleep(ctx, d); err != nil {
			return b, err
		}
	}
	return b, nil
}

// delayFor computes the wait before the next attempt. With exponential
// backoff the waits are linear multiples of the base delay: the first retry
// waits 1x, the second 2x, and so on. The multiplier sequence is part of the
// engine's compatibility contract.
func delayFor(pol policy.Policy, retriesLeft int) time.Duration {
	if pol.ExponentialBackoff {
		return pol.BaseDelay * time.Duration(pol.MaxRetries-retriesLeft+1)
	}
	return pol.BaseDelay
}

// finalize freezes the report, fires the completion hook and publishes into
// a requested capture. The completion hook observes the report before any
// terminal error reaches the caller.
func (e *Executor) finalize(ctx context.Context, pol policy.Policy, b report.Builder) (report.Report, error) {
	rep, err := b.Build()
	if err != nil {
		e.log(ctx, slog.LevelError, "report validation failed",
			slog.String("policy", pol.Name),
			slog.String("error", err.Error()))
		return report.Report{}, err
	}
	if pol.OnComplete != nil {
		pol.OnComplete(rep)
	}
	if capture, ok := report.FromContext(ctx); ok {
		report.Store(capture, &rep)
	}
	return rep, nil
}

func (e *Executor) failCall(ctx context.Context, pol policy.Policy, b report.Builder, cause error) (report.Report, error) {
	b = b.WithFailure(e.clock.Now())
	rep, ferr := e.finalize(ctx, pol, b)
	if ferr != nil {
		return report.Report{}, ferr
	}
	e.observer.OnFailure(ctx, rep)
	e.log(ctx, slog.LevelDebug, "retry call failed",
		slog.String("policy", pol.Name),
		slog.Int("attempts", rep.Attempts),
		slog.String("error", cause.Error()))
	return rep, cause
}

func invoke[T any](e *Executor, ctx context.Context, op OperationValue[T]) (val T, err error) {
	if e.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
	}
	return op(ctx)
}
