package config

import "time"

// LightsConfig controls device configuration and dispatch bounds.
type LightsConfig struct {
	DevicesFile      string
	TeamColorsFile   string
	CommandTimeout   time.Duration // per-device send budget
	RetryDelay       time.Duration // pause before the single failure retry
	DispatchDeadline time.Duration // overall bound for one dispatch fan-out
	GoveeAPIKey      string
	GoveeBaseURL     string
}

func loadLights() LightsConfig {
	return LightsConfig{
		DevicesFile:      envOrDefault(envDevicesFile, defaultDevicesFile),
		TeamColorsFile:   envOrDefault(envTeamColorsFile, defaultTeamColorsFile),
		CommandTimeout:   durationEnvOrDefault(envDeviceTimeout, defaultDeviceTimeout),
		RetryDelay:       durationEnvOrDefault(envDeviceRetryDelay, defaultDeviceRetryDelay),
		DispatchDeadline: durationEnvOrDefault(envDispatchDeadline, defaultDispatchDeadline),
		GoveeAPIKey:      envOrDefault(envGoveeAPIKey, ""),
		GoveeBaseURL:     envOrDefault(envGoveeBaseURL, defaultGoveeBaseURL),
	}
}
