package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/parser"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3, requires cgo
)

const runColumns = "id, source, column_name, header, options, checksum, created_at, cell_count, diagnostic_count"

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Driver is DriverModernc or DriverMattn.
	// Default: DriverModernc
	Driver string

	// Path is the database file path. Parent directories are created.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:       DriverModernc,
		Path:         "data/atlas.db",
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// dsn builds a data source name carrying the pragmas, so that every pooled
// connection is configured and not only the first one.
func (c *SQLiteConfig) dsn() string {
	timeout := c.BusyTimeout.Milliseconds()

	if c.Driver == DriverMattn {
		params := fmt.Sprintf("_busy_timeout=%d", timeout)
		if c.WALMode {
			params += "&_journal_mode=WAL"
		}
		return "file:" + c.Path + "?" + params
	}

	params := fmt.Sprintf("_pragma=busy_timeout(%d)", timeout)
	if c.WALMode {
		params += "&_pragma=journal_mode(WAL)"
	}
	return "file:" + c.Path + "?" + params
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database and initializes its schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverModernc
	}
	if config.Driver != DriverModernc && config.Driver != DriverMattn {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("unknown driver %q", config.Driver))
	}
	if config.Path == "" {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("database path is empty"))
	}

	logger := slog.Default().With("component", "store.sqlite")

	if dir := filepath.Dir(config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(config.Driver, config.dsn())
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
		db.SetMaxIdleConns(config.MaxOpenConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"driver", config.Driver,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize creates the schema and checks its version.
func (s *SQLiteStorage) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Save persists a run and its cells in a single transaction.
func (s *SQLiteStorage) Save(ctx context.Context, run *Run) error {
	run.Summarize()

	options, err := json.Marshal(run.Options)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`, policy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Column, run.Header, string(options), run.Checksum,
		run.CreatedAt.UnixNano(), run.CellCount, run.DiagnosticCount,
		PolicyKey(run.Options),
	)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cells (run_id, row_num, raw, kind, entries, tags, diagnostics)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	defer stmt.Close()

	for _, cell := range run.Cells {
		entries, _ := json.Marshal(cell.Value.Entries)
		tags, _ := json.Marshal(cell.Value.Tags)
		diags, _ := json.Marshal(cell.Diagnostics)

		if _, err := stmt.ExecContext(ctx,
			run.ID, cell.Row, cell.Raw, cell.Value.Kind.String(),
			string(entries), string(tags), string(diags),
		); err != nil {
			return NewStorageError("sqlite", "save_cell", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "save", err)
	}
	return nil
}

// Get loads a run and its cells.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT row_num, raw, kind, entries, tags, diagnostics
		FROM cells WHERE run_id = ? ORDER BY row_num`, id)
	if err != nil {
		return nil, NewStorageError("sqlite", "get_cells", err)
	}
	defer rows.Close()

	run.Cells = make([]Cell, 0, run.CellCount)
	for rows.Next() {
		cell, err := scanCell(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan_cell", err)
		}
		run.Cells = append(run.Cells, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "get_cells", err)
	}

	return run, nil
}

// List returns matching runs, newest first, without cells.
func (s *SQLiteStorage) List(ctx context.Context, filter *Filter) ([]*Run, error) {
	if filter == nil {
		filter = &Filter{}
	}

	whereClause, args := buildWhereClause(filter)

	query := "SELECT " + runColumns + " FROM runs"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return s.queryRuns(ctx, "list", query, args...)
}

// FindByChecksum returns the newest run with identical inputs.
func (s *SQLiteStorage) FindByChecksum(ctx context.Context, source, column, checksum string, opts parser.Options) (*Run, error) {
	runs, err := s.queryRuns(ctx, "find_by_checksum",
		"SELECT "+runColumns+` FROM runs
		WHERE source = ? AND column_name = ? AND checksum = ? AND policy = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`,
		source, column, checksum, PolicyKey(opts))
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return runs[0], nil
}

// Count returns the number of matching runs.
func (s *SQLiteStorage) Count(ctx context.Context, filter *Filter) (int64, error) {
	if filter == nil {
		filter = &Filter{}
	}

	whereClause, args := buildWhereClause(filter)
	query := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteBefore removes runs created before cutoff along with their cells.
func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.deleteRuns(ctx, "delete_before",
		"SELECT id FROM runs WHERE created_at < ?", cutoff.UnixNano())
}

// DeleteOldest removes the oldest runs beyond keep along with their cells.
func (s *SQLiteStorage) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	return s.deleteRuns(ctx, "delete_oldest",
		"SELECT id FROM runs ORDER BY created_at DESC, id DESC LIMIT -1 OFFSET ?", keep)
}

// deleteRuns deletes the runs selected by selectIDs and their cells.
func (s *SQLiteStorage) deleteRuns(ctx context.Context, operation, selectIDs string, args ...any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStorageError("sqlite", operation, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cells WHERE run_id IN ("+selectIDs+")", args...); err != nil {
		return 0, NewStorageError("sqlite", operation, err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id IN ("+selectIDs+")", args...)
	if err != nil {
		return 0, NewStorageError("sqlite", operation, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", operation, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, NewStorageError("sqlite", operation, err)
	}
	return deleted, nil
}

// Close releases the database handle.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}

	s.logger.Info("SQLite storage closed")
	return nil
}

func (s *SQLiteStorage) queryRuns(ctx context.Context, operation, query string, args ...any) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", operation, err)
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", operation, err)
	}
	return runs, nil
}

// buildWhereClause builds a SQL WHERE clause from filter.
// Returns the clause (without "WHERE") and its arguments.
func buildWhereClause(filter *Filter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.Column != "" {
		conditions = append(conditions, "column_name = ?")
		args = append(args, filter.Column)
	}
	if filter.Before != nil {
		conditions = append(conditions, "created_at < ?")
		args = append(args, filter.Before.UnixNano())
	}
	if filter.After != nil {
		conditions = append(conditions, "created_at > ?")
		args = append(args, filter.After.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var options string
	var createdAt int64

	err := row.Scan(
		&run.ID, &run.Source, &run.Column, &run.Header, &options, &run.Checksum,
		&createdAt, &run.CellCount, &run.DiagnosticCount,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(options), &run.Options); err != nil {
		return nil, fmt.Errorf("decode options of run %s: %w", run.ID, err)
	}
	run.CreatedAt = time.Unix(0, createdAt)

	return &run, nil
}

func scanCell(row scanner) (Cell, error) {
	var cell Cell
	var kind string
	var entries, tags, diags sql.NullString

	if err := row.Scan(&cell.Row, &cell.Raw, &kind, &entries, &tags, &diags); err != nil {
		return Cell{}, err
	}

	cell.Value.Kind = ast.ParseKind(kind)
	if entries.Valid {
		if err := json.Unmarshal([]byte(entries.String), &cell.Value.Entries); err != nil {
			return Cell{}, err
		}
	}
	if tags.Valid {
		if err := json.Unmarshal([]byte(tags.String), &cell.Value.Tags); err != nil {
			return Cell{}, err
		}
	}
	if diags.Valid {
		if err := json.Unmarshal([]byte(diags.String), &cell.Diagnostics); err != nil {
			return Cell{}, err
		}
	}

	return cell, nil
}
