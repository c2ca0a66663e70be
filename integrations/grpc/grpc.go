// Package grpc wires retries into gRPC clients via a unary interceptor.
package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/retry"
)

// PolicyFunc selects a retry policy for a full gRPC method name
// ("/package.Service/Method").
type PolicyFunc func(method string) policy.Policy

// MethodName strips the leading slash and service qualifier from a full
// method name, leaving "Service/Method".
func MethodName(method string) string {
	return strings.TrimPrefix(method, "/")
}

// UnaryClientInterceptor returns an interceptor that retries unary calls
// under the policy chosen by policyFor. A nil policyFor applies pol to
// every method, with the method name as the policy name when pol has none.
func UnaryClientInterceptor(exec *retry.Executor, pol policy.Policy, policyFor PolicyFunc) grpc.UnaryClientInterceptor {
	if policyFor == nil {
		policyFor = func(method string) policy.Policy {
			p := pol
			if p.Name == "" {
				p.Name = MethodName(method)
			}
			return p
		}
	}
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return exec.Do(ctx, policyFor(method), func(ctx context.Context) error {
			return invoker(ctx, method, req, reply, cc, opts...)
		})
	}
}

// RetryOnCodes returns a retry predicate matching the given gRPC status
// codes. With no codes it retries Unavailable and ResourceExhausted, the
// codes that conventionally signal transient server conditions. Errors
// that carry no gRPC status never retry.
func RetryOnCodes(retryable ...codes.Code) func(error) bool {
	if len(retryable) == 0 {
		retryable = []codes.Code{codes.Unavailable, codes.ResourceExhausted}
	}
	return func(err error) bool {
		st, ok := status.FromError(err)
		if !ok {
			return false
		}
		for _, c := range retryable {
			if st.Code() == c {
				return true
			}
		}
		return false
	}
}
