package policy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func TestRetryOn(t *testing.T) {
	pred := RetryOn(errTransient)

	assert.True(t, pred(errTransient))
	assert.True(t, pred(fmt.Errorf("wrapped: %w", errTransient)))
	assert.False(t, pred(errFatal))
	assert.False(t, pred(nil))
}

func TestSkipOn(t *testing.T) {
	pred := SkipOn(errFatal)

	assert.True(t, pred(errTransient))
	assert.False(t, pred(errFatal))
	assert.False(t, pred(fmt.Errorf("wrapped: %w", errFatal)))
}

func TestNot(t *testing.T) {
	always := func(error) bool { return true }
	assert.False(t, Not(always)(errTransient))
}
