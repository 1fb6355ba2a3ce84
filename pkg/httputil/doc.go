// Package httputil provides retry helpers for outgoing HTTP calls.
//
// The analysis backend client wraps transient failures (network errors,
// timeouts, 5xx responses) in [RetryableError]; [Retry] attempts the call
// again with exponential backoff and returns any other error immediately:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
//
// Defaults: 3 attempts, 1 second initial delay doubling after each attempt.
// Cancelling ctx stops the wait between attempts.
package httputil
