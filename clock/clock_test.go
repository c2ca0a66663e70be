package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemSleep_ZeroReturnsImmediately(t *testing.T) {
	require.NoError(t, System().Sleep(context.Background(), 0))
	require.NoError(t, System().Sleep(context.Background(), -time.Second))
}

func TestSystemSleep_Elapses(t *testing.T) {
	start := time.Now()
	require.NoError(t, System().Sleep(context.Background(), 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestSystemSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := System().Sleep(ctx, time.Minute)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestManual_SleepAdvancesAndRecords(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)

	require.NoError(t, m.Sleep(context.Background(), 10*time.Millisecond))
	require.NoError(t, m.Sleep(context.Background(), 20*time.Millisecond))

	assert.Equal(t, start.Add(30*time.Millisecond), m.Now())
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, m.Sleeps())
}

func TestManual_SleepHonorsCancelledContext(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Sleep(ctx, time.Second)
	require.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, m.Sleeps())
}

func TestManual_Advance(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManual(start)
	m.Advance(time.Minute)

	assert.Equal(t, start.Add(time.Minute), m.Now())
	assert.Empty(t, m.Sleeps())
}
