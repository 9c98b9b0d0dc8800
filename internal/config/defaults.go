package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Language:    "en",
			FromDate:    "",
			UntilDate:   "",
			AssumeZone:  "UTC",
			TopTerms:    20,
			FillHeatmap: true,
		},
		Storage: StorageConfig{
			Path:              "~/.config/searchwrapped",
			SQLiteFile:        "archive.db",
			SQLiteJournalMode: "wal",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
	}
}
