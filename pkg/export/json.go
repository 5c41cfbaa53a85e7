package export

import (
	"context"
	"encoding/json"
	"io"

	"slr-hq/atlas/pkg/store"
)

// JSONExporter exports cells and runs to JSON.
type JSONExporter struct {
	// Pretty enables indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{
		Pretty: pretty,
	}
}

// Export writes cells as a JSON array. An empty input produces [].
func (e *JSONExporter) Export(ctx context.Context, cells []store.Cell, w io.Writer) error {
	if cells == nil {
		cells = []store.Cell{}
	}
	return e.write(ctx, "json", len(cells), cells, w)
}

// ExportRuns writes runs, cells included, as a JSON array.
func (e *JSONExporter) ExportRuns(ctx context.Context, runs []*store.Run, w io.Writer) error {
	if runs == nil {
		runs = []*store.Run{}
	}
	return e.write(ctx, "json", len(runs), runs, w)
}

func (e *JSONExporter) write(ctx context.Context, format string, count int, v any, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return NewExportError(format, count, err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return NewExportError(format, count, err)
	}
	return nil
}
