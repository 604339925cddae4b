package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sankalpa/khaata/internal/service"
)

var (
	// ErrRateLimit marks a provider rate-limit response; WithRetry
	// backs off to the maximum delay before trying again.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries is returned once every attempt has failed.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError lets an operation tell WithRetry whether its failure
// is worth another attempt. Errors that don't wrap a RetryableError
// are retried by default.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// WithRetry runs operation with exponential backoff. The import
// pipeline wraps its batch writes in it to ride out transient SQLite
// lock contention.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	delay := opts.InitialDelay

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		var retryableErr *RetryableError
		if errors.As(err, &retryableErr) && !retryableErr.Retryable {
			return err
		}

		if errors.Is(err, ErrRateLimit) {
			delay = opts.MaxDelay
		}

		if attempt == opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, opts.MaxAttempts, err)
		}

		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * opts.Multiplier)
			if delay > opts.MaxDelay {
				delay = opts.MaxDelay
			}
		}
	}

	return ErrMaxRetries
}
