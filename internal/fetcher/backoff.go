package fetcher

import (
	"context"
	"time"
)

type retryState int

const (
	retryIdle retryState = iota
	retryAttempting
	retrySucceeded
	retryFailed
)

// retrier drives the bounded retry loop as an explicit state machine
// {idle, attempting(n), succeeded, failed}. Backoff grows with the
// attempt index: delay(n) = base * n, so later retries wait longer.
type retrier struct {
	maxAttempts int
	base        time.Duration
}

func (r retrier) delay(attempt int) time.Duration {
	return r.base * time.Duration(attempt)
}

// do invokes fn until it succeeds, the attempt budget is spent, or ctx
// is cancelled. The last error is surfaced when all attempts fail.
func (r retrier) do(ctx context.Context, fn func(attempt int) error) error {
	state := retryIdle
	attempt := 0
	var lastErr error

	for {
		switch state {
		case retryIdle:
			state = retryAttempting
		case retryAttempting:
			attempt++
			if err := fn(attempt); err != nil {
				lastErr = err
				if attempt >= r.maxAttempts {
					state = retryFailed
					break
				}
				if err := sleep(ctx, r.delay(attempt)); err != nil {
					lastErr = err
					state = retryFailed
				}
				break
			}
			state = retrySucceeded
		case retrySucceeded:
			return nil
		case retryFailed:
			return lastErr
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
