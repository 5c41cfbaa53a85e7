package ast

// Block is one top-level bracket group of a cell, outer brackets removed.
type Block struct {
	// Content is the verbatim text between the outer brackets.
	Content string

	// Offset is the byte offset of the opening bracket within the cell.
	Offset int

	// Keyed is true when Content has a colon at bracket depth 0 outside
	// any <...> span.
	Keyed bool

	// Key is the trimmed key with escaped spans removed. Empty for bare blocks.
	Key string

	// Values are the split value tokens (keyed blocks) or bare tokens.
	Values []string
}
