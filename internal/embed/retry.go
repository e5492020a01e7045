package embed

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryBackend retries transient backend errors with exponential backoff
// and jitter.
type RetryBackend struct {
	inner  Backend
	config RetryConfig
}

// WithRetry wraps a Backend with retry logic.
func WithRetry(b Backend, cfg RetryConfig) Backend {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryBackend{inner: b, config: cfg}
}

func (r *RetryBackend) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		vectors, err := r.inner.Embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		if !retryable(err) || attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

func (r *RetryBackend) ModelID() string {
	return r.inner.ModelID()
}

// Close forwards to the wrapped backend when it holds resources.
func (r *RetryBackend) Close() error {
	if c, ok := r.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var be *ErrBackend
	if errors.As(err, &be) {
		return be.Transient
	}
	return false
}

func (r *RetryBackend) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
