package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/AntonStoeckl/detached-state-go/snapshot"
)

const (
	defaultMaxAttempts  = 5
	defaultBaseDelay    = 100 * time.Millisecond
	defaultJitterFactor = 0.3
	logMsgRetrying      = "operation failed, retrying"
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")
)

// Func is an operation that can be retried.
type Func func(ctx context.Context) error

type config struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	retryIf      func(error) bool
	logger       snapshot.Logger
}

// WithExponentialBackoff runs fn until it succeeds, returns a permanent error, or runs out of attempts.
//
// Retry Schedule (default): 0 ms, 100 ms, 200 ms, 400 ms, 800 ms (with 30% jitter)
//
// Context cancellation and deadline errors are never retried.
func WithExponentialBackoff(ctx context.Context, fn Func, options ...Option) error {
	cfg := &config{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
		retryIf:      func(error) bool { return true },
	}

	for _, option := range options {
		if err := option(cfg); err != nil {
			return err
		}
	}

	var lastErr error

	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			// Exponential backoff: baseDelay * 2^(attempt-1)
			delay := cfg.baseDelay * time.Duration(1<<(attempt-1))
			jitter := rand.Float64() * float64(delay) * cfg.jitterFactor //nolint:gosec // math/rand is sufficient for jitter
			backoffDelay := delay + time.Duration(jitter)

			if cfg.logger != nil {
				cfg.logger.Warn(logMsgRetrying, "attempt", attempt+1, "delay", backoffDelay.String(), "error", lastErr.Error())
			}

			select {
			case <-time.After(backoffDelay):
			case <-ctx.Done():
				return errors.Join(ctx.Err(), lastErr)
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !isRetryable(cfg, lastErr) {
			return lastErr
		}
	}

	return lastErr
}

func isRetryable(cfg *config, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return cfg.retryIf(err)
}

// Option configures retry behavior using the functional options pattern.
type Option func(*config) error

// WithMaxAttempts sets the maximum number of attempts, including the first one.
func WithMaxAttempts(attempts int) Option {
	return func(cfg *config) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		cfg.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, baseDelay*8, etc.
func WithBaseDelay(delay time.Duration) Option {
	return func(cfg *config) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		cfg.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter, as a share of the calculated delay, in the range 0.0 to 1.0.
func WithJitterFactor(factor float64) Option {
	return func(cfg *config) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		cfg.jitterFactor = factor

		return nil
	}
}

// WithRetryIf restricts retries to errors for which retryable returns true.
func WithRetryIf(retryable func(error) bool) Option {
	return func(cfg *config) error {
		if retryable != nil {
			cfg.retryIf = retryable
		}

		return nil
	}
}

// WithLogger logs every retry at warn level.
func WithLogger(logger snapshot.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}
