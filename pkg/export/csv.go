package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"slr-hq/atlas/pkg/store"
)

// CSVExporter exports cells to CSV, one line per value.
type CSVExporter struct {
	// IncludeHeader writes a header row first.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes cells to w.
func (e *CSVExporter) Export(ctx context.Context, cells []store.Cell, w io.Writer) error {
	writer := csv.NewWriter(w)

	if e.IncludeHeader {
		if err := writer.Write(e.getHeaderRow()); err != nil {
			return NewExportError("csv", len(cells), err)
		}
	}

	for i, cell := range cells {
		if i%100 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for _, row := range cellToRows(cell) {
			if err := writer.Write(row); err != nil {
				return NewExportError("csv", len(cells), err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return NewExportError("csv", len(cells), err)
	}
	return nil
}

func (e *CSVExporter) getHeaderRow() []string {
	return []string{"row", "kind", "key", "value"}
}

// cellToRows flattens a cell. A key without values yields one line with an
// empty value.
func cellToRows(cell store.Cell) [][]string {
	row := strconv.Itoa(cell.Row)
	kind := cell.Value.Kind.String()

	var rows [][]string
	for _, entry := range cell.Value.Entries {
		if len(entry.Values) == 0 {
			rows = append(rows, []string{row, kind, entry.Key, ""})
			continue
		}
		for _, v := range entry.Values {
			rows = append(rows, []string{row, kind, entry.Key, v})
		}
	}
	for _, tag := range cell.Value.Tags {
		rows = append(rows, []string{row, kind, "", tag})
	}

	if len(rows) == 0 {
		rows = append(rows, []string{row, kind, "", ""})
	}
	return rows
}
