package config

import "time"

// Default values for configuration fields.
const (
	// Dataset defaults
	DefaultDatasetPath = "data/review.csv"
	DefaultIDColumn    = "ID"

	// Parser defaults
	DefaultSkipInvalidKey   = true
	DefaultSkipInvalidValue = true
	DefaultMixedPolicy      = "keyed"
	DefaultUnbalancedPolicy = "drop"

	// Store defaults
	DefaultStoreBackend      = "sqlite"
	DefaultStoreDriver       = "sqlite"
	DefaultStorePath         = "data/atlas.db"
	DefaultStoreWALMode      = true
	DefaultStoreBusyTimeout  = 5 * time.Second
	DefaultStoreMaxOpenConns = 4
	DefaultRetentionDays     = 30
	DefaultRetentionSchedule = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsNamespace     = "atlas"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
)

// DefaultConfig returns a configuration with every default applied. It is
// used when no configuration file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every unset field with its default value.
func ApplyDefaults(cfg *Config) {
	// Dataset defaults
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = DefaultDatasetPath
	}
	if cfg.Dataset.IDColumn == "" {
		cfg.Dataset.IDColumn = DefaultIDColumn
	}
	if cfg.Dataset.Columns == nil {
		cfg.Dataset.Columns = make(map[string]string)
	}

	// Parser defaults
	if cfg.Parser.SkipInvalidKey == nil {
		cfg.Parser.SkipInvalidKey = boolPtr(DefaultSkipInvalidKey)
	}
	if cfg.Parser.SkipInvalidValue == nil {
		cfg.Parser.SkipInvalidValue = boolPtr(DefaultSkipInvalidValue)
	}
	if cfg.Parser.MixedPolicy == "" {
		cfg.Parser.MixedPolicy = DefaultMixedPolicy
	}
	if cfg.Parser.UnbalancedPolicy == "" {
		cfg.Parser.UnbalancedPolicy = DefaultUnbalancedPolicy
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DefaultStoreDriver
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.WALMode == nil {
		cfg.Store.WALMode = boolPtr(DefaultStoreWALMode)
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultStoreBusyTimeout
	}
	if cfg.Store.MaxOpenConns == 0 {
		cfg.Store.MaxOpenConns = DefaultStoreMaxOpenConns
	}
	if cfg.Store.Retention.Days == 0 {
		cfg.Store.Retention.Days = DefaultRetentionDays
	}
	if cfg.Store.Retention.Schedule == "" {
		cfg.Store.Retention.Schedule = DefaultRetentionSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

func boolPtr(b bool) *bool {
	return &b
}
