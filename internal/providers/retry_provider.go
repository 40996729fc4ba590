package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"smart-stadium/internal/domain/contests"
	"smart-stadium/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a ScoreboardProvider with retry behavior for transient
// upstream failures. Rate limits and malformed payloads pass through untouched.
type retryingProvider struct {
	inner        ScoreboardProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
	rng          *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner ScoreboardProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) ScoreboardProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG allows injecting the jitter RNG for deterministic tests.
func NewRetryingProviderWithRNG(inner ScoreboardProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) ScoreboardProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchScoreboard(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		snaps, err := r.inner.FetchScoreboard(ctx, sport, date)
		if r.metrics != nil {
			r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		}
		if err == nil {
			return snaps, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			if r.metrics != nil {
				r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			}
			// Backoff policy lives in the polling loop, not here.
			return nil, err
		}

		if !Retryable(err) || attempt == r.maxAttempts {
			break
		}

		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		delay := r.computeDelay(attempt)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
		"attempts", r.maxAttempts, "err", lastErr)
	return nil, lastErr
}

// computeDelay returns the backoff for an attempt with half-to-full jitter.
func (r *retryingProvider) computeDelay(attempt int) time.Duration {
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	return half + time.Duration(r.rng.Int63n(int64(half)+1))
}
