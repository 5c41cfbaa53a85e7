package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "ATLAS_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values and validates the result. Environment variables
// are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention ATLAS_SECTION_FIELD (e.g., ATLAS_STORE_DRIVER).
// When path is empty the defaults are used as the base configuration.
//
// The loading sequence is:
// 1. Load YAML from file (or defaults)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path == "" {
		cfg = DefaultConfig()
	} else {
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Dataset overrides
	if val := getenv("DATASET_PATH"); val != "" {
		cfg.Dataset.Path = val
	}
	if val := getenv("DATASET_ID_COLUMN"); val != "" {
		cfg.Dataset.IDColumn = val
	}
	// ATLAS_DATASET_COLUMNS=alias=Header;alias2=Header 2
	if val := getenv("DATASET_COLUMNS"); val != "" {
		for _, pair := range strings.Split(val, ";") {
			alias, header, ok := strings.Cut(pair, "=")
			if !ok || strings.TrimSpace(alias) == "" {
				continue
			}
			cfg.Dataset.Columns[strings.TrimSpace(alias)] = strings.TrimSpace(header)
		}
	}

	// Parser overrides
	if val := getenv("PARSER_SKIP_INVALID_KEY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Parser.SkipInvalidKey = boolPtr(b)
		}
	}
	if val := getenv("PARSER_SKIP_INVALID_VALUE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Parser.SkipInvalidValue = boolPtr(b)
		}
	}
	if val := getenv("PARSER_MIXED_POLICY"); val != "" {
		cfg.Parser.MixedPolicy = val
	}
	if val := getenv("PARSER_UNBALANCED_POLICY"); val != "" {
		cfg.Parser.UnbalancedPolicy = val
	}
	if val := getenv("PARSER_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Parser.Workers = i
		}
	}

	// Store overrides
	if val := getenv("STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := getenv("STORE_DRIVER"); val != "" {
		cfg.Store.Driver = val
	}
	if val := getenv("STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := getenv("STORE_WAL_MODE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Store.WALMode = boolPtr(b)
		}
	}
	if val := getenv("STORE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.BusyTimeout = d
		}
	}
	if val := getenv("STORE_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.Retention.Days = i
		}
	}
	if val := getenv("STORE_RETENTION_MAX_RUNS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Store.Retention.MaxRuns = i
		}
	}
	if val := getenv("STORE_RETENTION_SCHEDULE"); val != "" {
		cfg.Store.Retention.Schedule = val
	}
	if val := getenv("STORE_RETENTION_ARCHIVE_DIR"); val != "" {
		cfg.Store.Retention.ArchiveDir = val
	}

	// Watch overrides
	if val := getenv("WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	// Telemetry overrides
	if val := getenv("TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := getenv("TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := getenv("TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := getenv("TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}

func getenv(name string) string {
	return os.Getenv(EnvPrefix + name)
}
