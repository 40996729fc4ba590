package config

// Config holds runtime configuration for the engine.
type Config struct {
	Port         string
	Provider     string
	Sports       []string
	AdminToken   string
	CORSOrigins  []string
	RateLimitRPM int // read API requests per client per minute; 0 disables
	ESPN         ESPNConfig
	Monitor      MonitorConfig
	Lights       LightsConfig
	History      HistoryConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Sports:       listEnvOrDefault(envSports, defaultSports),
		AdminToken:   envOrDefault(envAdminToken, ""),
		CORSOrigins:  listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		RateLimitRPM: nonNegativeIntEnvOrDefault(envRateLimitRPM, defaultRateLimitRPM),
		ESPN:         loadESPN(),
		Monitor:      loadMonitor(),
		Lights:       loadLights(),
		History:      loadHistory(),
		Metrics:      loadMetrics(),
	}
}
