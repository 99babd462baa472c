package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultInterval    = 2 * time.Second
)

type Operation func() error

type ExponentialConfig struct {
	InitialInterval time.Duration
	MaxElapsedTime  time.Duration
	OnRetry         func(error, time.Duration)
}

// Exponential retries fn with exponential backoff until it succeeds or
// MaxElapsedTime passes.
func Exponential(fn Operation, cfg ExponentialConfig) error {
	return ExponentialContext(context.Background(), fn, cfg)
}

// ExponentialContext is Exponential with cancellation: a done context stops
// the retry loop between attempts.
func ExponentialContext(ctx context.Context, fn Operation, cfg ExponentialConfig) error {
	if cfg.InitialInterval <= 0 {
		return errors.New("initial interval must be > 0")
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = cfg.InitialInterval
	if cfg.MaxElapsedTime > 0 {
		bo.MaxElapsedTime = cfg.MaxElapsedTime
	}

	notify := func(err error, next time.Duration) {
		if cfg.OnRetry != nil {
			cfg.OnRetry(err, next)
		}
	}
	return backoff.RetryNotify(backoff.Operation(fn), backoff.WithContext(bo, ctx), notify)
}

// Constant retries fn up to attempts times with a fixed sleep between tries.
func Constant(fn Operation, interval time.Duration, attempts int) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts {
			time.Sleep(interval)
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
