package config

import "time"

// MonitorConfig controls the polling loop cadence and backoff policy.
type MonitorConfig struct {
	PollInterval   time.Duration // while any contest is in progress
	IdleInterval   time.Duration // while nothing is in progress
	BackoffCeiling time.Duration // max interval reached by rate-limit backoff
	FinalRetention time.Duration // how long finished contests stay tracked
	FetchTimeout   time.Duration // budget for one upstream fetch
}

func loadMonitor() MonitorConfig {
	return MonitorConfig{
		PollInterval:   durationEnvOrDefault(envPollInterval, defaultPollInterval),
		IdleInterval:   durationEnvOrDefault(envIdleInterval, defaultIdleInterval),
		BackoffCeiling: durationEnvOrDefault(envBackoffCeiling, defaultBackoffCeiling),
		FinalRetention: durationEnvOrDefault(envFinalRetention, defaultFinalRetention),
		FetchTimeout:   durationEnvOrDefault(envFetchTimeout, defaultFetchTimeout),
	}
}
