// Package retry wraps fallible vendor calls with exponential backoff.
package retry

import (
	"context"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config controls the retry behavior of Do.
type Config struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	// RetryIf decides whether an error is retryable. Nil retries everything.
	RetryIf func(error) bool
}

// DefaultConfig is the policy used for all vendor calls:
// 3 attempts, 1s initial wait, 10s cap, doubling.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// Do invokes op until it succeeds or the attempt budget is exhausted,
// sleeping an exponentially growing, capped duration between failures.
// Exhaustion returns the LAST error from op unchanged, so callers can
// inspect it with errors.Is/As. The sleep honors ctx cancellation.
func Do[T any](ctx context.Context, name string, cfg Config, op func() (T, error)) (T, error) {
	var result T

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialWait
	b.MaxInterval = cfg.MaxWait
	b.Multiplier = cfg.Multiplier
	b.MaxElapsedTime = 0 // attempts bound us, not wall time

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	operation := func() error {
		attempt++
		v, err := op()
		if err != nil {
			if cfg.RetryIf != nil && !cfg.RetryIf(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Printf("[Retry.%s] Attempt %d/%d failed: %v (retrying in %s)", name, attempt, attempts, err, wait)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		log.Printf("[Retry.%s] All %d attempts failed: %v", name, attempt, err)
		var zero T
		return zero, err
	}
	return result, nil
}
