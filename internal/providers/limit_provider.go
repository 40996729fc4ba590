package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"smart-stadium/internal/domain/contests"
)

// rateLimitedProvider wraps a ScoreboardProvider with a token bucket so calls
// stay under the upstream quota regardless of the poll cadence.
type rateLimitedProvider struct {
	next    ScoreboardProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a ScoreboardProvider that spaces calls by the
// given minimum interval. Calls block on the bucket rather than failing.
func NewRateLimitedProvider(next ScoreboardProvider, interval time.Duration, logger *slog.Logger) ScoreboardProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchScoreboard(ctx context.Context, sport contests.Sport, date string) ([]contests.Snapshot, error) {
	if p == nil || p.next == nil {
		logWithProvider(ctx, p.loggerOrNil(), slog.LevelWarn, "rate-limited", "provider unavailable")
		return nil, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "fetch canceled while waiting")
		return nil, err
	}
	return p.next.FetchScoreboard(ctx, sport, date)
}

func (p *rateLimitedProvider) loggerOrNil() *slog.Logger {
	if p == nil {
		return nil
	}
	return p.logger
}
