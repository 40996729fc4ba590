package server

import (
	"log/slog"
	"time"

	"smart-stadium/internal/config"
	"smart-stadium/internal/metrics"
	"smart-stadium/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.ScoreboardProvider {
	base := selectProvider(cfg, f.logger)
	// Shared rate limiter to respect upstream quota even when the poll cadence is faster.
	limited := providers.NewRateLimitedProvider(base, providerMinInterval(cfg), f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}

// providerMinInterval spaces upstream calls. The fixture provider is local and
// unthrottled; real providers are spaced a second apart so multi-sport cycles
// stay under the upstream quota without starving the live cadence.
func providerMinInterval(cfg config.Config) time.Duration {
	if cfg.Provider == "fixture" || cfg.Provider == "" {
		return time.Millisecond
	}
	return time.Second
}
