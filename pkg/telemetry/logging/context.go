package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for ingest run IDs.
	RunIDKey contextKey = "run_id"

	// SourceKey is the context key for the dataset path being processed.
	SourceKey contextKey = "source"

	// ColumnKey is the context key for the column being parsed.
	ColumnKey contextKey = "column"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithSource adds a dataset path to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the dataset path from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithColumn adds a column name to the context.
func WithColumn(ctx context.Context, column string) context.Context {
	return context.WithValue(ctx, ColumnKey, column)
}

// GetColumn retrieves the column name from the context.
func GetColumn(ctx context.Context) string {
	if column, ok := ctx.Value(ColumnKey).(string); ok {
		return column
	}
	return ""
}

// extractContextFields returns key-value pairs for every run field set in ctx.
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}
	if column := GetColumn(ctx); column != "" {
		fields = append(fields, "column", column)
	}

	return fields
}
