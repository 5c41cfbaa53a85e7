package ast

import "fmt"

// Location represents the position of a piece of annotation text.
// Row is the 1-based data row within a column (0 when the text was parsed
// outside of a column) and Offset is the 0-based byte offset inside the cell.
type Location struct {
	Column string // Column header or alias the cell belongs to
	Row    int    // Data row (1-based)
	Offset int    // Byte offset within the cell
}

// String returns a human-readable representation of the location.
// Format: "column:row:offset"
func (l Location) String() string {
	if l.Column == "" && l.Row == 0 {
		return fmt.Sprintf("<cell>:%d", l.Offset)
	}
	if l.Column == "" {
		return fmt.Sprintf("<column>:%d:%d", l.Row, l.Offset)
	}
	return fmt.Sprintf("%s:%d:%d", l.Column, l.Row, l.Offset)
}

// IsValid returns true if the location points into a column row.
func (l Location) IsValid() bool {
	return l.Row > 0
}

// At returns a copy of the location moved to the given offset.
func (l Location) At(offset int) Location {
	l.Offset = offset
	return l
}
