package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeoutError(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := &TimeoutError{Timeout: 250 * time.Millisecond, Cause: cause}

	assert.EqualError(t, err, "reprise: operation timed out after 250ms: dial tcp: i/o timeout")
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, cause)

	bare := &TimeoutError{Timeout: time.Second}
	assert.EqualError(t, bare, "reprise: operation timed out after 1s")
	assert.NoError(t, bare.Unwrap())
}

func TestAttemptsExceededError(t *testing.T) {
	cause := errors.New("503")
	err := &AttemptsExceededError{MaxRetries: 4, Cause: cause}

	assert.EqualError(t, err, "reprise: max retries (4) exceeded: 503")
	assert.ErrorIs(t, err, ErrAttemptsExceeded)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestPanicError(t *testing.T) {
	err := &PanicError{Value: "boom", Stack: []byte("goroutine 1")}
	assert.EqualError(t, err, "reprise: operation panicked: boom")
}

func TestErrors_NilReceivers(t *testing.T) {
	assert.Equal(t, "<nil>", (*TimeoutError)(nil).Error())
	assert.Equal(t, "<nil>", (*AttemptsExceededError)(nil).Error())
	assert.Equal(t, "<nil>", (*PanicError)(nil).Error())
}
