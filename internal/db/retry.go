package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func(ctx context.Context) error

// IsRetryable reports whether a failed attempt should be tried again.
type IsRetryable func(err error) bool

const (
	DefaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

// Try executes an operation with default retry settings for transient connection errors.
func Try(ctx context.Context, op Operation) error {
	return WithRetries(ctx, op, DefaultMaxRetries, defaultBackoff, IsTransientError)
}

// WithRetries runs op once plus up to maxRetries more times while isRetryable
// accepts the error. The wait between attempts grows linearly from backoff.
func WithRetries(ctx context.Context, op Operation, maxRetries int, backoff time.Duration, isRetryable IsRetryable) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if attempt == maxRetries || !isRetryable(err) {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return err
}

// IsTransientError checks whether a MongoDB error is a network failure or timeout.
func IsTransientError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected)
}
