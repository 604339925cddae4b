package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankalpa/khaata/internal/service"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetryEventualSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, fastRetry(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return errors.New("still broken")
	}, fastRetry(3))

	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	permanent := &RetryableError{Err: errors.New("bad input"), Retryable: false}
	err := WithRetry(context.Background(), func() error {
		calls++
		return permanent
	}, fastRetry(5))

	assert.Equal(t, 1, calls)
	var re *RetryableError
	assert.ErrorAs(t, err, &re)
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return errors.New("transient")
	}, fastRetry(5))

	assert.ErrorIs(t, err, context.Canceled)
}
