package parser

import "strings"

const (
	// Unspecified marks deliberately absent data at block, key or value level.
	Unspecified = "un-specified"

	// None marks a cell with no data.
	None = "none"
)

// IsSentinel reports whether s is the "un-specified" sentinel, ignoring case
// and surrounding whitespace.
func IsSentinel(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Unspecified)
}

// isSentinelCell reports whether the whole cell is "[none]" or "[un-specified]".
func isSentinelCell(cell string) bool {
	c := strings.TrimSpace(cell)
	return strings.EqualFold(c, "["+None+"]") || strings.EqualFold(c, "["+Unspecified+"]")
}

// Eligible reports whether a cell is routed to the block scanner: it must
// contain both brackets and must not be a whole-cell sentinel.
func Eligible(cell string) bool {
	return strings.Contains(cell, "[") &&
		strings.Contains(cell, "]") &&
		!isSentinelCell(cell)
}
