package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_RoundTrip(t *testing.T) {
	ctx, capture := Record(context.Background())
	assert.Nil(t, capture.Report())

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Same(t, capture, got)

	rep, err := NewBuilder("x", time.Unix(0, 0)).WithAttempt().WithSuccess(time.Unix(1, 0)).Build()
	require.NoError(t, err)
	Store(got, &rep)

	require.NotNil(t, capture.Report())
	assert.Equal(t, 1, capture.Report().Attempts)
}

func TestFromContext_Absent(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	_, ok = FromContext(nil)
	assert.False(t, ok)
}

func TestWithoutCapture_ShieldsNestedCalls(t *testing.T) {
	ctx, capture := Record(context.Background())
	inner := WithoutCapture(ctx)

	_, ok := FromContext(inner)
	assert.False(t, ok)
	assert.Nil(t, capture.Report())
}

func TestStore_NilSafe(t *testing.T) {
	Store(nil, &Report{})

	var capture *Capture
	assert.Nil(t, capture.Report())
}
