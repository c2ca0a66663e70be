package reprise_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aponysus/reprise"
	"github.com/aponysus/reprise/policy"
	"github.com/aponysus/reprise/report"
	"github.com/aponysus/reprise/retry"
)

func TestDoValue_SimpleSuccess(t *testing.T) {
	got, err := reprise.DoValue(context.Background(), reprise.New(), func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestDo_SimpleSuccess(t *testing.T) {
	err := reprise.Do(context.Background(), reprise.New(), func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
}

func TestDoValue_RetriesOnError(t *testing.T) {
	pol := reprise.New(policy.WithMaxRetries(2))
	var attempts int32
	got, err := reprise.DoValue(context.Background(), pol, func(context.Context) (int, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return 0, errors.New("retry me")
		}
		return 99, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 99, got)
	assert.Equal(t, int32(2), attempts)
}

func TestDoValueWithReport(t *testing.T) {
	pol := reprise.New(policy.WithName("facade"), policy.WithMaxRetries(1))
	var attempts int32
	_, rep, err := reprise.DoValueWithReport(context.Background(), pol, func(context.Context) (int, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return 0, errors.New("once")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "facade", rep.Policy)
	assert.Equal(t, 2, rep.Attempts)
	assert.True(t, rep.Succeeded)
}

func TestDo_CaptureViaContext(t *testing.T) {
	ctx, capture := report.Record(context.Background())
	err := reprise.Do(ctx, reprise.New(policy.WithName("captured")), func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
	rep := capture.Report()
	require.NotNil(t, rep)
	assert.Equal(t, "captured", rep.Policy)
}

func Example() {
	pol := reprise.New(
		policy.WithName("greeting"),
		policy.WithMaxRetries(2),
	)

	attempts := 0
	msg, err := reprise.DoValue(context.Background(), pol, func(context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("warming up")
		}
		return "hello", nil
	})
	fmt.Println(msg, err)
	// Output: hello <nil>
}

func ExampleInit() {
	reprise.Init(retry.NewExecutor(retry.WithRecoverPanics(true)))
}
