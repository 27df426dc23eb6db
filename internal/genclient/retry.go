package genclient

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig matches the upstream rate-limit guidance: a small fixed
// number of attempts with mildly increasing delays and no jitter.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   4 * time.Second,
	MaxDelay:    10 * time.Second,
}

// RetryableFunc is a function that can be retried
type RetryableFunc func(attempt int) error

// Retry executes fn until it succeeds, returns a non-transient error, or the
// attempt budget is exhausted. Delays grow linearly from BaseDelay and are
// capped at MaxDelay. If the context is canceled the wait aborts immediately.
func Retry(ctx context.Context, config RetryConfig, fn RetryableFunc) error {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsTransient(err) {
			return err
		}
		if attempt >= config.MaxAttempts {
			break
		}

		delay := calculateDelay(config, attempt)
		if delay <= 0 {
			continue
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}

	return lastErr
}

// calculateDelay computes the wait before the next attempt: BaseDelay after
// the first failure, growing by BaseDelay per attempt up to MaxDelay.
func calculateDelay(config RetryConfig, attempt int) time.Duration {
	delay := config.BaseDelay * time.Duration(attempt)
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	return delay
}
