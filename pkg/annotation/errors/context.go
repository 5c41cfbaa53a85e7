package errors

import (
	"fmt"
	"strings"
)

// maxContextWidth bounds how much of a long cell is shown around an offset.
const maxContextWidth = 60

// ExtractContext renders the part of cell surrounding offset with a caret
// under the offending byte. Long cells are windowed and elided with "...".
func ExtractContext(cell string, offset int) string {
	if cell == "" || offset < 0 || offset > len(cell) {
		return ""
	}

	start := 0
	end := len(cell)
	if end-start > maxContextWidth {
		start = offset - maxContextWidth/2
		if start < 0 {
			start = 0
		}
		end = start + maxContextWidth
		if end > len(cell) {
			end = len(cell)
			start = end - maxContextWidth
		}
	}

	prefix := ""
	if start > 0 {
		prefix = "..."
	}
	suffix := ""
	if end < len(cell) {
		suffix = "..."
	}

	line := prefix + cell[start:end] + suffix
	caret := strings.Repeat(" ", len(prefix)+offset-start) + "^"

	return fmt.Sprintf("  | %s\n  | %s\n", line, caret)
}

// WithContext fills err.Context from the cell text.
func WithContext(err *Error, cell string) *Error {
	err.Context = ExtractContext(cell, err.Location.Offset)
	return err
}

// AddContext fills the context of every diagnostic in the list.
func (el *ErrorList) AddContext(cell string) *ErrorList {
	for _, err := range el.Errors {
		WithContext(err, cell)
	}
	return el
}
