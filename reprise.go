// Package reprise retries operations under declarative policies: bounded
// attempts, linear-multiple backoff, wall-clock timeouts, and a structured
// report of every call.
//
// Most callers use the package-level Do and DoValue with the shared default
// executor; construct a retry.Executor directly for custom clocks, loggers,
// or observers.
package reprise

import (
	"context"

	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
	"github.com/aponysus/reprise/retry"
)

// Policy is the declarative retry configuration.
type Policy = policy.Policy

// Report is the structured record of a completed retry call.
type Report = report.Report

// Init sets the global default executor.
// It must be called before Do/DoValue are used.
func Init(exec *retry.Executor) {
	retry.SetGlobal(exec)
}

// New builds a Policy from options.
func New(opts ...policy.Option) Policy {
	return policy.New(opts...)
}

// Do executes op under pol using the default executor.
func Do(ctx context.Context, pol Policy, op retry.Operation) error {
	return retry.DefaultExecutor().Do(ctx, pol, op)
}

// DoValue executes op under pol using the default executor.
func DoValue[T any](ctx context.Context, pol Policy, op retry.OperationValue[T]) (T, error) {
	return retry.DoValue(ctx, retry.DefaultExecutor(), pol, op)
}

// DoValueWithReport is DoValue, additionally returning the call's report.
func DoValueWithReport[T any](ctx context.Context, pol Policy, op retry.OperationValue[T]) (T, Report, error) {
	return retry.DoValueWithReport(ctx, retry.DefaultExecutor(), pol, op)
}
