package config

import "time"

const (
	envPort         = "PORT"
	envProvider     = "PROVIDER"
	envSports       = "SPORTS"
	envAdminToken   = "ADMIN_TOKEN"
	envCORSOrigins  = "CORS_ORIGINS"
	envRateLimitRPM = "RATE_LIMIT_PER_MINUTE"

	envESPNBaseURL = "ESPN_BASE_URL"
	envESPNTimeout = "ESPN_TIMEOUT"
	envTimezone    = "TIMEZONE"

	envPollInterval   = "POLL_INTERVAL"
	envIdleInterval   = "IDLE_POLL_INTERVAL"
	envBackoffCeiling = "BACKOFF_CEILING"
	envFinalRetention = "FINAL_RETENTION"
	envFetchTimeout   = "FETCH_TIMEOUT"

	envDevicesFile      = "DEVICES_FILE"
	envTeamColorsFile   = "TEAM_COLORS_FILE"
	envDeviceTimeout    = "DEVICE_TIMEOUT"
	envDeviceRetryDelay = "DEVICE_RETRY_DELAY"
	envDispatchDeadline = "DISPATCH_DEADLINE"
	envGoveeAPIKey      = "GOVEE_API_KEY"
	envGoveeBaseURL     = "GOVEE_BASE_URL"

	envHistoryPath      = "HISTORY_PATH"
	envHistoryRetention = "HISTORY_RETENTION_DAYS"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultProvider     = "fixture"
	defaultRateLimitRPM = 120

	defaultESPNBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultESPNTimeout = 10 * Duration(time.Second)
	defaultTimezone    = "America/New_York"

	// Live cadence while any contest is in progress; idle cadence otherwise.
	defaultPollInterval = 7 * Duration(time.Second)
	defaultIdleInterval = 2 * Duration(time.Minute)
	// Backoff doubles from the nominal interval up to this ceiling on 429s.
	defaultBackoffCeiling = 5 * Duration(time.Minute)
	// Final contests are kept around for late status reads before eviction.
	defaultFinalRetention = 1 * Duration(time.Hour)
	defaultFetchTimeout   = 15 * Duration(time.Second)

	defaultDevicesFile      = "config/devices.json"
	defaultTeamColorsFile   = "config/team_colors.json"
	defaultDeviceTimeout    = 2 * Duration(time.Second)
	defaultDeviceRetryDelay = 250 * Duration(time.Millisecond)
	defaultDispatchDeadline = 10 * Duration(time.Second)
	defaultGoveeBaseURL     = "https://developer-api.govee.com"

	defaultHistoryPath      = "data/history"
	defaultHistoryRetention = 14

	defaultMetricsPort = "9090"
)

var (
	defaultSports      = []string{"nfl"}
	defaultCORSOrigins = []string{"*"}
)
