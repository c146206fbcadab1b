package telemetry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// RetryConfig configures how a Source is polled when it fails.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 3)
	MaxRetries int

	// InitialDelay is the initial backoff delay (default: 100ms)
	InitialDelay time.Duration

	// MaxDelay is the maximum backoff delay (default: 2 seconds)
	MaxDelay time.Duration

	// Multiplier is the backoff multiplier (default: 2.0 for exponential)
	Multiplier float64
}

// DefaultRetryConfig returns defaults sized for a display refresh loop:
// a failing source must not hold the tick for longer than a few seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// backoff returns the delay to wait after the given zero-based attempt.
// delay = min(InitialDelay * Multiplier^attempt, MaxDelay)
func (c RetryConfig) backoff(attempt int) time.Duration {
	next := time.Duration(float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt)))
	if next > c.MaxDelay {
		return c.MaxDelay
	}
	return next
}

// PollWithBackoff fetches the latest snapshot from src, retrying with
// exponential backoff. Context errors returned by the source are not retried.
//
// Example usage:
//
//	snap, err := PollWithBackoff(ctx, DefaultRetryConfig(), source)
func PollWithBackoff(ctx context.Context, cfg RetryConfig, src Source) (*Snapshot, error) {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("poll cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		snap, err := src.Latest(ctx)
		if err == nil {
			return snap, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		if attempt == cfg.MaxRetries {
			break
		}
		delay = cfg.backoff(attempt)
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, lastErr)
}
