package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/config"
	"slr-hq/atlas/pkg/telemetry/logging"
)

// defaultConfigFile is used when --config is not given and the file exists.
const defaultConfigFile = "atlas.yaml"

var (
	// Global flags
	cfgFile  string
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas - annotation parser for systematic literature reviews",
	Long: `Atlas parses the bracketed annotation language used in systematic
literature review spreadsheets.

Cells such as "[Quantum gates: X, H], [Shots: 200]" become key/value
mappings, cells such as "[Simulator], [Hardware]" become tag lists. Atlas
reports malformed annotations, computes frequencies, ranges and column
overlaps, and stores parse runs for later comparison.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits with the status of its error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: "+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output, same as --log-level debug")
}

// setup loads the configuration and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Telemetry.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewConfigError("--log-level", err.Error())
	}
	logger.SetDefault()

	return nil
}

// loadConfig returns the process configuration, loading it on first use.
func loadConfig() (*config.Config, error) {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg, nil
	}

	path := configPath()
	if err := config.Initialize(path); err != nil {
		return nil, cli.NewConfigError("--config", err.Error())
	}
	return config.GetConfig(), nil
}

// configPath returns --config, or the default file when it exists.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}
