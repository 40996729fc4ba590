package config

import "time"

// ESPNConfig controls how we talk to the ESPN scoreboard API.
type ESPNConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Timezone string
}

func loadESPN() ESPNConfig {
	return ESPNConfig{
		BaseURL:  envOrDefault(envESPNBaseURL, defaultESPNBaseURL),
		Timeout:  durationEnvOrDefault(envESPNTimeout, defaultESPNTimeout),
		Timezone: envOrDefault(envTimezone, defaultTimezone),
	}
}
