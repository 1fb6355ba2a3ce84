package httputil

import (
	"context"
	"errors"
	"time"
)

// MaxDelay caps the wait between two attempts, including waits requested
// by the server through [RetryableError.After].
const MaxDelay = 30 * time.Second

// RetryableError marks a transient failure (network error, timeout, 5xx)
// that [Retry] should attempt again.
type RetryableError struct {
	Err error

	// After overrides the backoff delay for the next attempt, typically
	// from a Retry-After header on a 503. Zero keeps the backoff.
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry calls fn up to attempts times. Only errors wrapped in
// [RetryableError] are retried; the delay doubles after each failure and
// never exceeds [MaxDelay]. The unwrapped cause of the last failure is
// returned, or ctx.Err() when ctx is cancelled while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		lastErr = re.Err

		if i == attempts-1 {
			break
		}
		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(min(wait, MaxDelay)):
			delay = min(delay*2, MaxDelay)
		}
	}
	return lastErr
}

// RetryWithBackoff calls [Retry] with 3 attempts and a 1 second initial delay.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}
