package store

import (
	"fmt"

	"slr-hq/atlas/pkg/config"
)

// New creates the backend selected by cfg.
func New(cfg config.StoreConfig) (Storage, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite", "":
		wal := true
		if cfg.WALMode != nil {
			wal = *cfg.WALMode
		}
		return NewSQLiteStorage(&SQLiteConfig{
			Driver:       cfg.Driver,
			Path:         cfg.Path,
			MaxOpenConns: cfg.MaxOpenConns,
			WALMode:      wal,
			BusyTimeout:  cfg.BusyTimeout,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
