package export

import "fmt"

// ExportError represents an error during export.
type ExportError struct {
	Format string // Export format ("json", "csv")
	Count  int    // Number of items being exported
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [format=%s, count=%d]: %v", e.Format, e.Count, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new ExportError.
func NewExportError(format string, count int, cause error) *ExportError {
	return &ExportError{
		Format: format,
		Count:  count,
		Cause:  cause,
	}
}
