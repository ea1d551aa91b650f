// Package httputil provides shared HTTP client utilities: retry with
// exponential backoff and file-based response caching.
//
// The retry helpers distinguish transient failures (wrapped in
// [RetryableError]) from permanent ones, so callers only pay the backoff
// cost where a retry can actually help. The [Cache] stores JSON-marshalable
// responses on disk keyed by SHA-256 of the cache key, which keeps keys
// filesystem-safe regardless of their content.
package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults for [RetryWithBackoff], sized for the Gemini API: a 429 there
// usually clears within a couple of seconds, and permanent failures (bad
// key, malformed request) are never wrapped as retryable, so three
// attempts bound the worst case at a few seconds of waiting.
const (
	defaultAttempts     = 3
	defaultInitialDelay = time.Second
)

// RetryableError marks an error as transient. Wrap rate limits, 5xx
// responses, and network failures with it so [Retry] attempts the
// operation again; any unwrapped error stops the loop immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between tries.
// Non-retryable errors return immediately; cancellation of ctx during a
// backoff wait returns ctx.Err(). After the final attempt the last
// retryable error is returned.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn with the package defaults.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, defaultAttempts, defaultInitialDelay, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
