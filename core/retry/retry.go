package retry

import (
	"context"
	"time"
)

// DelayFunc computes the wait before the given attempt (1-based).
// The delay for attempt n is applied after attempt n fails and before
// attempt n+1 runs.
type DelayFunc func(attempt int) time.Duration

// Linear returns a delay function that waits base*attempt.
func Linear(base time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Options configures a retry loop.
type Options struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// Delay computes the wait between attempts.
	Delay DelayFunc
	// IsRetryable decides whether an error is worth another attempt.
	// A nil function retries every error.
	IsRetryable func(error) bool
}

// Do runs fn until it succeeds, the attempts are exhausted, a non-retryable
// error occurs, or the context is cancelled. The last error is returned.
func Do(ctx context.Context, opts Options, fn func() error) error {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if opts.IsRetryable != nil && !opts.IsRetryable(err) {
			return err
		}
		if attempt == opts.MaxAttempts {
			break
		}

		var wait time.Duration
		if opts.Delay != nil {
			wait = opts.Delay(attempt)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
