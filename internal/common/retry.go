package common

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// Read paths tolerate transient store failures with a short bounded retry.
// Decide never goes through here: its conditional update must stay
// single-attempt so exactly one decision wins.
const (
	DefaultRetryAttempts = 3
	DefaultRetryBackoff  = 100 * time.Millisecond
)

// Retryable reports whether an error is worth one more attempt. Not-found
// results and context cancellations are final.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// WithRetry runs fn up to attempts times, backing off between attempts.
// The last error is returned unwrapped so callers can classify it.
func WithRetry(ctx context.Context, attempts int, backoff time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if !Retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
