package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "store.driver").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateDataset(&cfg.Dataset)...)
	errs = append(errs, validateParser(&cfg.Parser)...)
	errs = append(errs, validateStore(&cfg.Store)...)
	errs = append(errs, validateWatch(&cfg.Watch, &cfg.Dataset)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateDataset(cfg *DatasetConfig) []FieldError {
	var errs []FieldError

	if cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "dataset.path",
			Message: "dataset path is required",
		})
	}

	for alias, header := range cfg.Columns {
		if strings.TrimSpace(header) == "" {
			errs = append(errs, FieldError{
				Field:   "dataset.columns." + alias,
				Message: "column header must not be empty",
			})
		}
	}

	return errs
}

func validateParser(cfg *ParserConfig) []FieldError {
	var errs []FieldError

	if err := cfg.Options().Validate(); err != nil {
		errs = append(errs, FieldError{
			Field:   "parser",
			Message: err.Error(),
		})
	}

	return errs
}

func validateStore(cfg *StoreConfig) []FieldError {
	var errs []FieldError

	validBackends := map[string]bool{"sqlite": true, "memory": true}
	if !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "store.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'sqlite' or 'memory'", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" {
		validDrivers := map[string]bool{"sqlite": true, "sqlite3": true}
		if !validDrivers[cfg.Driver] {
			errs = append(errs, FieldError{
				Field:   "store.driver",
				Message: fmt.Sprintf("invalid driver %q: must be 'sqlite' or 'sqlite3'", cfg.Driver),
			})
		}
		if cfg.Path == "" {
			errs = append(errs, FieldError{
				Field:   "store.path",
				Message: "database path is required for the sqlite backend",
			})
		}
	}

	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "store.busy_timeout",
			Message: "busy timeout must be positive",
		})
	}
	if cfg.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.max_open_conns",
			Message: "max open connections must be non-negative",
		})
	}
	if cfg.Retention.MaxRuns < 0 {
		errs = append(errs, FieldError{
			Field:   "store.retention.max_runs",
			Message: "max runs must be non-negative",
		})
	}
	if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
		errs = append(errs, FieldError{
			Field:   "store.retention.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Retention.Schedule, err),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig, dataset *DatasetConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "debounce must be positive",
		})
	}

	for _, alias := range cfg.Columns {
		if _, ok := dataset.Columns[alias]; !ok {
			errs = append(errs, FieldError{
				Field:   "watch.columns",
				Message: fmt.Sprintf("unknown column alias %q", alias),
			})
		}
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text' or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}
