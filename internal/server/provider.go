package server

import (
	"log/slog"

	"smart-stadium/internal/config"
	"smart-stadium/internal/providers"
	"smart-stadium/internal/providers/espn"
	"smart-stadium/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.ScoreboardProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "espn":
		return espn.NewClient(espn.Config{
			BaseURL:  cfg.ESPN.BaseURL,
			Timeout:  cfg.ESPN.Timeout,
			Timezone: cfg.ESPN.Timezone,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
