package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the run database schema.
const Schema = `
-- Parse runs
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    column_name TEXT NOT NULL,
    header TEXT NOT NULL,
    options TEXT NOT NULL,
    policy TEXT NOT NULL,
    checksum TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    cell_count INTEGER NOT NULL,
    diagnostic_count INTEGER NOT NULL
);

-- Parsed cells, one row per spreadsheet row
CREATE TABLE IF NOT EXISTS cells (
    run_id TEXT NOT NULL,
    row_num INTEGER NOT NULL,
    raw TEXT NOT NULL,
    kind TEXT NOT NULL,
    entries TEXT,
    tags TEXT,
    diagnostics TEXT,
    PRIMARY KEY (run_id, row_num)
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_lookup ON runs(source, column_name, checksum);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
