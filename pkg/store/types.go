package store

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
)

// Run is one parsed column.
type Run struct {
	// ID is a UUID assigned at ingestion.
	ID string `json:"id"`

	// Source is the dataset file the column was read from.
	Source string `json:"source"`

	// Column is the alias the column was requested by, and Header the CSV
	// header it resolved to.
	Column string `json:"column"`
	Header string `json:"header"`

	// Options is the policy the cells were parsed with.
	Options parser.Options `json:"options"`

	// Checksum identifies the raw cell contents (see Checksum).
	Checksum string `json:"checksum"`

	CreatedAt time.Time `json:"created_at"`

	// CellCount and DiagnosticCount summarize Cells. They are filled by
	// Save and are available from List, which does not load cells.
	CellCount       int `json:"cell_count"`
	DiagnosticCount int `json:"diagnostic_count"`

	Cells []Cell `json:"cells,omitempty"`
}

// Cell is one parsed cell of a run.
type Cell struct {
	Row         int          `json:"row"`
	Raw         string       `json:"raw"`
	Value       ast.Value    `json:"value"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Diagnostic is the persisted form of a parser diagnostic.
type Diagnostic struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Offset     int    `json:"offset"`
	Suggestion string `json:"suggestion,omitempty"`
}

// DiagnosticsFrom converts parser diagnostics for storage.
func DiagnosticsFrom(list *errors.ErrorList) []Diagnostic {
	if !list.HasErrors() {
		return nil
	}
	out := make([]Diagnostic, 0, list.Count())
	for _, e := range list.Errors {
		out = append(out, Diagnostic{
			Type:       string(e.Type),
			Severity:   string(e.Severity),
			Message:    e.Message,
			Offset:     e.Location.Offset,
			Suggestion: e.Suggestion,
		})
	}
	return out
}

// Summarize fills CellCount and DiagnosticCount from Cells.
func (r *Run) Summarize() {
	r.CellCount = len(r.Cells)
	r.DiagnosticCount = 0
	for _, c := range r.Cells {
		r.DiagnosticCount += len(c.Diagnostics)
	}
}

// Checksum returns the hex SHA-256 of the raw cells. Each cell is length
// prefixed so that cell boundaries are part of the digest.
func Checksum(cells []string) string {
	h := sha256.New()
	var size [8]byte
	for _, c := range cells {
		binary.LittleEndian.PutUint64(size[:], uint64(len(c)))
		h.Write(size[:])
		h.Write([]byte(c))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PolicyKey returns a stable encoding of the options that affect parse
// output. Workers only changes scheduling and is left out.
func PolicyKey(opts parser.Options) string {
	opts.Workers = 0
	data, _ := json.Marshal(opts)
	return string(data)
}

// Filter selects runs. Zero fields match everything.
type Filter struct {
	Source string
	Column string

	// Before and After bound CreatedAt (exclusive).
	Before *time.Time
	After  *time.Time

	// Limit caps the result size; zero means no limit.
	Limit  int
	Offset int
}

// Storage defines the interface for run storage backends.
// Implementations must be thread-safe.
type Storage interface {
	// Save persists a run with its cells. Saving an existing ID fails.
	Save(ctx context.Context, run *Run) error

	// Get loads a run with its cells. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns matching runs, newest first, without their cells.
	List(ctx context.Context, filter *Filter) ([]*Run, error)

	// FindByChecksum returns the newest run of source and column with the
	// given checksum and policy, or ErrNotFound.
	FindByChecksum(ctx context.Context, source, column, checksum string, opts parser.Options) (*Run, error)

	// Count returns the number of matching runs. Limit and Offset are ignored.
	Count(ctx context.Context, filter *Filter) (int64, error)

	// DeleteBefore removes runs created before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the oldest runs so that at most keep remain.
	DeleteOldest(ctx context.Context, keep int64) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}

// CellsFrom pairs raw cells with their inspection results. Rows are 1-based.
func CellsFrom(raw []string, results []parser.Result) []Cell {
	cells := make([]Cell, len(results))
	for i, res := range results {
		cells[i] = Cell{
			Row:         i + 1,
			Raw:         raw[i],
			Value:       res.Value,
			Diagnostics: DiagnosticsFrom(res.Diagnostics),
		}
	}
	return cells
}
