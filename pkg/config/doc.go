// Package config provides configuration management for Atlas.
//
// Configuration is read from a YAML file (conventionally atlas.yaml),
// completed with defaults and overridden by environment variables.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("atlas.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("atlas.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention ATLAS_SECTION_FIELD:
//
//   - ATLAS_DATASET_PATH overrides dataset.path
//   - ATLAS_PARSER_MIXED_POLICY overrides parser.mixed_policy
//   - ATLAS_STORE_DRIVER overrides store.driver
//   - ATLAS_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// ATLAS_DATASET_COLUMNS adds aliases as "alias=Header;alias2=Header 2".
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	dataset:
//	  path: data/review.csv
//	  id_column: id
//	  columns:
//	    id: "ID"
//	    rq7_oracles: "RQ7 Oracles"
//	parser:
//	  skip_invalid_key: true
//	  skip_invalid_value: true
//	  mixed_policy: keyed
//	store:
//	  driver: sqlite
//	  path: data/atlas.db
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
package config
