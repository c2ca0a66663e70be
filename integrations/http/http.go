// Package http retries HTTP requests, handling request cloning, body
// replay, and response draining between attempts.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
	"github.com/aponysus/reprise/retry"
)

// drainLimit caps how much of a failed response body is read before the
// retry, to avoid hanging on large error bodies.
const drainLimit = 4096

// Do executes an HTTP request under pol, retrying per the policy. Each
// attempt sends a fresh clone of req; failed response bodies are drained
// and closed so connections can be reused.
//
// Requests with a body must be replayable (req.GetBody non-nil).
// Non-2xx responses surface as a *StatusError; pair the policy with
// RetryOnStatus to choose which codes retry.
func Do(ctx context.Context, exec *retry.Executor, pol policy.Policy, client *http.Client, req *http.Request) (*http.Response, report.Report, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return nil, report.Report{}, errors.New("reprise: request body is not replayable (GetBody is nil)")
	}

	op := func(ctx context.Context) (*http.Response, error) {
		outReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			outReq.Body = body
		}

		resp, err := client.Do(outReq)
		if err != nil {
			return nil, &StatusError{Err: err, Method: req.Method}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		// Drain and close so the connection is reusable for the retry.
		_, _ = io.CopyN(io.Discard, resp.Body, drainLimit)
		resp.Body.Close()

		return nil, &StatusError{
			Code:   resp.StatusCode,
			Method: req.Method,
			Header: resp.Header,
		}
	}

	return retry.DoValueWithReport(ctx, exec, pol, op)
}

// RetryOnStatus returns a retry predicate matching transport errors and the
// given status codes. With no codes it retries transport errors, 429, and
// all 5xx responses.
func RetryOnStatus(statusCodes ...int) func(error) bool {
	return func(err error) bool {
		var se *StatusError
		if !errors.As(err, &se) {
			return false
		}
		if se.Err != nil {
			// Transport-level failure, no response was received.
			return true
		}
		if len(statusCodes) == 0 {
			return se.Code == http.StatusTooManyRequests || se.Code >= 500
		}
		for _, code := range statusCodes {
			if se.Code == code {
				return true
			}
		}
		return false
	}
}

// StatusError reports a failed HTTP attempt: either a non-2xx response
// (Code set) or a transport error (Err set).
type StatusError struct {
	Code   int
	Method string
	Header http.Header
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "http status " + strconv.Itoa(e.Code)
}

func (e *StatusError) Unwrap() error { return e.Err }

// RetryAfter parses the Retry-After response header, accepting both the
// delay-seconds and HTTP-date forms.
func (e *StatusError) RetryAfter() (time.Duration, bool) {
	if e.Header == nil {
		return 0, false
	}
	s := e.Header.Get("Retry-After")
	if s == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}

	if t, err := http.ParseTime(s); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
