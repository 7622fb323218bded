package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryClient is a decorator that retries transient errors with
// exponential backoff and jitter.
type retryClient struct {
	inner  Client
	config RetryConfig
}

// WithRetry wraps a Client with retry logic.
func WithRetry(c Client, cfg RetryConfig) Client {
	return &retryClient{inner: c, config: cfg}
}

func (r *retryClient) Complete(ctx context.Context, req Request) (*Result, error) {
	var lastErr error
	badRetried := false

	for attempt := range r.config.MaxAttempts {
		res, err := r.inner.Complete(ctx, req)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !retryable(err, &badRetried) {
			return nil, err
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *retryClient) Model() string {
	return r.inner.Model()
}

// retryable classifies an error. A malformed response gets exactly one
// retry; context errors and truncation never retry; everything else is
// treated as transient.
func retryable(err error, badRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var trunc *TruncatedError
	if errors.As(err, &trunc) {
		// Token budget misconfiguration, not transient.
		return false
	}

	var bad *BadResponseError
	if errors.As(err, &bad) {
		if *badRetried {
			return false
		}
		*badRetried = true
		return true
	}

	return true
}

// backoff computes the wait before the next attempt.
func (r *retryClient) backoff(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
