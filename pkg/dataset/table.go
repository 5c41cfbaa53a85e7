package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"slr-hq/atlas/pkg/annotation/errors"
)

// Table is a loaded spreadsheet. Rows are padded to the header width.
type Table struct {
	// Name identifies the source, usually the file path.
	Name string

	headers []string
	index   map[string]int
	rows    [][]string
}

// ColumnError is returned when a column cannot be found.
type ColumnError struct {
	Column     string
	Table      string
	Suggestion string
}

// Error implements the error interface.
func (e *ColumnError) Error() string {
	msg := fmt.Sprintf("column %q not found in %s", e.Column, e.Table)
	if e.Suggestion != "" {
		msg += ": " + e.Suggestion
	}
	return msg
}

// Load reads a CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", path, err)
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses CSV from r. A UTF-8 or UTF-16 byte order mark is honoured
// and removed. The first record is the header row.
func Read(r io.Reader, name string) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q has no header row", name)
	}

	t := &Table{
		Name:    name,
		headers: make([]string, len(records[0])),
		index:   make(map[string]int, len(records[0])),
	}
	for i, h := range records[0] {
		h = strings.TrimSpace(h)
		t.headers[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}

	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(t.headers))
		copy(row, rec)
		t.rows = append(t.rows, row)
	}

	return t, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// Headers returns the header row.
func (t *Table) Headers() []string {
	return append([]string(nil), t.headers...)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns the cells under header, one per data row.
func (t *Table) Column(header string) ([]string, error) {
	i, ok := t.index[header]
	if !ok {
		return nil, &ColumnError{
			Column:     header,
			Table:      t.Name,
			Suggestion: errors.SuggestName(header, t.headers),
		}
	}

	cells := make([]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = row[i]
	}
	return cells, nil
}

// Resolve returns the cells of a column named either by alias or by header.
// Aliases take precedence.
func (t *Table) Resolve(name string, aliases map[string]string) ([]string, error) {
	header, err := ResolveHeader(name, aliases, t.headers)
	if err != nil {
		if ce, ok := err.(*ColumnError); ok {
			ce.Table = t.Name
		}
		return nil, err
	}
	return t.Column(header)
}

// ResolveHeader maps an alias or header to a header present in headers.
func ResolveHeader(name string, aliases map[string]string, headers []string) (string, error) {
	if h, ok := aliases[name]; ok {
		name = h
	}
	for _, h := range headers {
		if h == name {
			return h, nil
		}
	}

	candidates := append([]string(nil), headers...)
	for alias := range aliases {
		candidates = append(candidates, alias)
	}
	sort.Strings(candidates)

	return "", &ColumnError{Column: name, Suggestion: errors.SuggestName(name, candidates)}
}
