// Package export writes parsed cells and stored runs to JSON and CSV.
//
// # JSON Export
//
// JSONExporter writes cells as an array of {row, raw, value, diagnostics}
// objects. Mappings keep their key order:
//
//	exporter := export.NewJSONExporter(true)
//	err := exporter.Export(ctx, cells, os.Stdout)
//
// ExportRuns writes whole runs and is used to archive runs before retention
// deletes them.
//
// # CSV Export
//
// CSVExporter flattens cells to one line per value with the columns row,
// kind, key and value. Bare tokens have an empty key; empty cells produce a
// single line with an empty key and value so that every row is represented.
//
// # Error Handling
//
// Exporters return *ExportError when encoding or writing fails.
package export
