package export

import (
	"context"
	"fmt"
	"io"

	"slr-hq/atlas/pkg/store"
)

// Exporter writes parsed cells in a given format.
type Exporter interface {
	Export(ctx context.Context, cells []store.Cell, w io.Writer) error
}

// ForFormat returns the exporter for "json" or "csv".
func ForFormat(format string, pretty bool) (Exporter, error) {
	switch format {
	case "json":
		return NewJSONExporter(pretty), nil
	case "csv":
		return NewCSVExporter(true), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
