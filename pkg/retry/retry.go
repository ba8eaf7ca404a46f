// Package retry implements the fixed-attempt, fixed-delay retry discipline
// applied to connectivity-dependent startup checks.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/metrics"
)

// Policy describes a retry schedule: a maximum attempt count and a constant
// delay between attempts. No backoff, no jitter.
type Policy struct {
	// Attempts is the maximum number of invocations (minimum 1).
	Attempts int

	// Delay is the wait between attempts.
	Delay time.Duration
}

// DefaultPolicy matches the startup gates: three attempts, five seconds apart.
var DefaultPolicy = Policy{Attempts: 3, Delay: 5 * time.Second}

// Do runs op under the policy. On success it returns immediately. On failure
// it waits the fixed delay and retries; once attempts are exhausted it
// returns the error from the final attempt. Errors from earlier attempts are
// logged and discarded. The inter-attempt wait is cooperative: it observes
// ctx cancellation but blocks nothing else in the process.
func Do(ctx context.Context, policy Policy, name string, op func(ctx context.Context) error) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		metrics.ObserveRetryAttempt(name)

		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 1 {
				logger.Info("Operation succeeded after retry", "operation", name, "attempt", attempt)
			}
			return nil
		}

		if attempt < attempts {
			logger.Warn("Operation failed, retrying",
				"operation", name,
				"attempt", attempt,
				"max_attempts", attempts,
				"delay", policy.Delay.String(),
				"error", lastErr)

			if err := sleep(ctx, policy.Delay); err != nil {
				return fmt.Errorf("%s interrupted: %w", name, err)
			}
		}
	}

	logger.Error("Operation failed, attempts exhausted",
		"operation", name,
		"attempts", attempts,
		"error", lastErr)

	return lastErr
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
