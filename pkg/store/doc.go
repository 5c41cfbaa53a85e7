// Package store persists parse runs.
//
// A Run is one column of the review dataset parsed under a given policy:
// the raw cells, their decoded values and the diagnostics produced while
// decoding them. Runs are immutable once saved; ingestion skips saving a
// run whose source, column, policy and cell checksum match an existing one.
//
// # Backends
//
//   - SQLiteStorage: durable storage in a single database file. Two
//     database/sql drivers are supported: "sqlite" (modernc.org/sqlite, pure
//     Go) and "sqlite3" (github.com/mattn/go-sqlite3, cgo).
//   - MemoryStorage: process-local storage for tests and one-shot commands.
//
// # Basic Usage
//
//	s, err := store.NewSQLiteStorage(&store.SQLiteConfig{
//	    Driver:      "sqlite",
//	    Path:        "data/atlas.db",
//	    WALMode:     true,
//	    BusyTimeout: 5 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	runs, err := s.List(ctx, &store.Filter{Column: "rq7_oracles", Limit: 10})
//
// Both backends are safe for concurrent use. Retention lives in the
// retention subpackage.
package store
