package config

import (
	"time"

	"slr-hq/atlas/pkg/annotation/parser"
)

// Config is the root configuration structure for Atlas.
// It contains the dataset location, the annotation parsing policy, run
// storage, file watching and telemetry settings.
type Config struct {
	// Dataset describes the review spreadsheet and the column aliases used
	// by commands.
	Dataset DatasetConfig `yaml:"dataset"`

	// Parser contains the annotation parsing policy applied to every column.
	Parser ParserConfig `yaml:"parser"`

	// Store contains configuration for persisted parse runs including the
	// SQLite driver and retention.
	Store StoreConfig `yaml:"store"`

	// Watch contains configuration for re-ingesting the dataset when it
	// changes on disk.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatasetConfig locates the review spreadsheet.
type DatasetConfig struct {
	// Path is the CSV export of the review spreadsheet.
	// Default: "data/review.csv"
	Path string `yaml:"path"`

	// Columns maps short aliases to CSV headers, for example
	// "rq7_oracles" -> "RQ7 Oracles". Commands accept either form.
	Columns map[string]string `yaml:"columns"`

	// IDColumn is the alias or header of the paper identifier column.
	// Default: "ID"
	IDColumn string `yaml:"id_column"`
}

// ParserConfig is the column-level parsing policy.
type ParserConfig struct {
	// SkipInvalidKey drops "[un-specified]" blocks and blocks keyed by the
	// sentinel. Pointer so that an explicit false survives defaulting.
	// Default: true
	SkipInvalidKey *bool `yaml:"skip_invalid_key"`

	// SkipInvalidValue drops sentinel tokens from value lists.
	// Default: true
	SkipInvalidValue *bool `yaml:"skip_invalid_value"`

	// MixedPolicy is "keyed" or "preserve".
	// Default: "keyed"
	MixedPolicy string `yaml:"mixed_policy"`

	// UnbalancedPolicy is "drop" or "error".
	// Default: "drop"
	UnbalancedPolicy string `yaml:"unbalanced_policy"`

	// Workers bounds per-column concurrency. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// Options converts the parser section to parser options.
func (c ParserConfig) Options() parser.Options {
	opts := parser.DefaultOptions()
	if c.SkipInvalidKey != nil {
		opts.SkipInvalidKey = *c.SkipInvalidKey
	}
	if c.SkipInvalidValue != nil {
		opts.SkipInvalidValue = *c.SkipInvalidValue
	}
	if c.MixedPolicy != "" {
		opts.Mixed = parser.MixedPolicy(c.MixedPolicy)
	}
	if c.UnbalancedPolicy != "" {
		opts.Unbalanced = parser.UnbalancedPolicy(c.UnbalancedPolicy)
	}
	opts.Workers = c.Workers
	return opts
}

// StoreConfig contains configuration for the run store.
type StoreConfig struct {
	// Backend is "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Driver selects the database/sql driver: "sqlite3" (cgo) or
	// "sqlite" (pure Go).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file.
	// Default: "data/atlas.db"
	Path string `yaml:"path"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is how long a writer waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns bounds the connection pool.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// Retention controls pruning of old runs.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig controls pruning of old runs.
type RetentionConfig struct {
	// Days is the age after which runs are deleted. A negative value keeps
	// runs regardless of age.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRuns caps the number of stored runs. Zero means no cap.
	MaxRuns int64 `yaml:"max_runs"`

	// Schedule is a standard cron expression for background pruning.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`

	// ArchiveDir, when set, receives a JSON export of every run before it
	// is deleted.
	ArchiveDir string `yaml:"archive_dir"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce collapses bursts of file events.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Columns are the aliases re-ingested when the dataset changes.
	// Empty means every configured alias.
	Columns []string `yaml:"columns"`
}

// TelemetryConfig contains logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is json, text or console.
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	// Enabled turns on metric collection and the metrics endpoint in watch mode.
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	// Default: "atlas"
	Namespace string `yaml:"namespace"`

	// ListenAddress is where watch mode serves metrics.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`
}
