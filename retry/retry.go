package retry

import (
	"context"
	"time"

	ai "github.com/toolweave/toolweave"
)

// Do executes fn with retry logic. Only transient errors are retried;
// permanent and user-input errors return immediately. A server-suggested
// delay (Retry-After) takes precedence over the computed backoff.
// Backoff waits respect context cancellation.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			if suggested := ai.RetryAfterOf(err); suggested > 0 {
				delay = suggested
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}
