// Package otel traces retry calls with OpenTelemetry: one span per call,
// an event per attempt, and the final report summarized as span attributes.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aponysus/reprise/observe"
	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
	"github.com/aponysus/reprise/retry"
)

const scopeName = "github.com/aponysus/reprise/integrations/otel"

// Tracer wraps an executor so each retry call runs inside its own span.
type Tracer struct {
	exec   *retry.Executor
	tracer trace.Tracer
}

// NewTracer builds a Tracer around exec using tp. A nil tp falls back to
// the global tracer provider.
func NewTracer(exec *retry.Executor, tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{exec: exec, tracer: tp.Tracer(scopeName)}
}

// Do executes op under pol inside a span named after the policy.
func (t *Tracer) Do(ctx context.Context, pol policy.Policy, op retry.Operation) error {
	_, err := DoValue(ctx, t, pol, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// DoValue executes op under pol inside a span named after the policy. The
// span records one event per attempt and, on completion, the attempt count
// and outcome of the call.
func DoValue[T any](ctx context.Context, t *Tracer, pol policy.Policy, op retry.OperationValue[T]) (T, error) {
	name := pol.Name
	if name == "" {
		name = "retry"
	}
	ctx, span := t.tracer.Start(ctx, "reprise."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("reprise.policy", pol.Name),
			attribute.Int("reprise.max_retries", pol.MaxRetries),
		))
	defer span.End()

	val, rep, err := retry.DoValueWithReport(ctx, t.exec, pol, op)

	span.SetAttributes(
		attribute.Int("reprise.attempts", rep.Attempts),
		attribute.Bool("reprise.timed_out", rep.TimedOut),
		attribute.Float64("reprise.total_seconds", rep.TotalTime.Seconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return val, err
}

// SpanObserver annotates the active span with attempt and retry events.
// Attach it to the executor to get per-attempt detail inside spans started
// by Tracer (or any other span in the calling context).
type SpanObserver struct {
	observe.BaseObserver
}

func (SpanObserver) OnAttempt(ctx context.Context, rec observe.AttemptRecord) {
	span := trace.SpanFromContext(ctx)
	attrs := []attribute.KeyValue{
		attribute.Int("reprise.attempt", rec.Attempt),
	}
	if rec.Err != nil {
		attrs = append(attrs, attribute.String("reprise.error", rec.Err.Error()))
	}
	span.AddEvent("attempt", trace.WithAttributes(attrs...))
}

func (SpanObserver) OnRetry(ctx context.Context, rec observe.AttemptRecord, reason report.RetryReason, delay time.Duration) {
	trace.SpanFromContext(ctx).AddEvent("retry", trace.WithAttributes(
		attribute.Int("reprise.attempt", rec.Attempt),
		attribute.String("reprise.reason", string(reason.Kind)),
		attribute.String("reprise.delay", delay.String()),
	))
}
