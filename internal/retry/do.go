package retry

import (
	"context"
	"time"
)

// Do runs fn up to attempts times, sleeping with exponential backoff
// between failures. When retryable is non-nil, only errors it accepts
// are retried; anything else is returned immediately. The last error is
// returned when every attempt fails.
func Do(ctx context.Context, attempts int, base time.Duration, fn func() error, retryable func(error) bool) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(ExponentialBackoff(attempt, base)):
		}
	}
	return err
}
