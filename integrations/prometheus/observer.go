// Package prometheus exports retry activity as Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aponysus/reprise/observe"
	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
)

// Observer implements observe.Observer, counting attempts and retries and
// timing completed calls, labeled by policy name and outcome.
type Observer struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ observe.Observer = (*Observer)(nil)

// NewObserver registers the retry metrics with reg and returns the
// observer. Pass prometheus.DefaultRegisterer for the default registry.
func NewObserver(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reprise_attempts_total",
			Help: "Operation invocations, including the initial attempt.",
		}, []string{"policy"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reprise_retries_total",
			Help: "Retry decisions by reason kind.",
		}, []string{"policy", "reason"}),
		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reprise_calls_total",
			Help: "Completed retry calls by outcome.",
		}, []string{"policy", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reprise_call_duration_seconds",
			Help:    "Wall-clock duration of completed retry calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"policy", "outcome"}),
	}
}

func (o *Observer) OnStart(context.Context, policy.Policy) {}

func (o *Observer) OnAttempt(_ context.Context, rec observe.AttemptRecord) {
	o.attempts.WithLabelValues(rec.Policy).Inc()
}

func (o *Observer) OnRetry(_ context.Context, rec observe.AttemptRecord, reason report.RetryReason, _ time.Duration) {
	o.retries.WithLabelValues(rec.Policy, string(reason.Kind)).Inc()
}

func (o *Observer) OnSuccess(_ context.Context, rep report.Report) {
	o.observeCall(rep, "success")
}

func (o *Observer) OnFailure(_ context.Context, rep report.Report) {
	outcome := "failure"
	if rep.TimedOut {
		outcome = "timeout"
	}
	o.observeCall(rep, outcome)
}

func (o *Observer) observeCall(rep report.Report, outcome string) {
	o.calls.WithLabelValues(rep.Policy, outcome).Inc()
	o.duration.WithLabelValues(rep.Policy, outcome).Observe(rep.TotalTime.Seconds())
}
