package config

// HistoryConfig controls durable celebration history storage.
type HistoryConfig struct {
	BasePath      string
	RetentionDays int
}

func loadHistory() HistoryConfig {
	return HistoryConfig{
		BasePath:      envOrDefault(envHistoryPath, defaultHistoryPath),
		RetentionDays: intEnvOrDefault(envHistoryRetention, defaultHistoryRetention),
	}
}
