// Package parser decodes bracketed annotation cells into ast.Value.
//
// # Grammar
//
// A cell is free text containing zero or more top-level blocks:
//
//	cell    := { text | block }
//	block   := "[" content "]"
//	content := key ":" values | values
//	values  := item { "," item }
//	item    := { text | "[" ... "]" | "<" ... ">" }
//
// Blocks are found by a depth-counting state machine: nested brackets stay
// inside the enclosing block verbatim. Inside a block, "<...>" spans are
// comments; they are removed before the key and values are read, so commas
// and colons inside them never split anything. The key separator is the
// first colon at bracket depth 0 outside any comment.
//
// # Shape
//
// Each cell is classified once: if no block has a key the cell becomes a
// list of bare tokens, if every block has a key it becomes a mapping, and if
// both kinds are present the MixedPolicy decides.
//
// # Sentinels
//
// Whole cells "[none]" and "[un-specified]" (any case) are empty. Inside a
// cell, "un-specified" marks deliberately absent data and is dropped
// according to SkipInvalidKey and SkipInvalidValue.
//
// # Usage
//
//	p := parser.NewParser()
//	v, err := p.Parse("[Quantum gates: X, Un-specified, H]")
//	// v.Entries == [{Quantum gates [X H]}]
//
//	values, err := p.WithWorkers(8).ParseColumnContext(ctx, "rq1", cells)
package parser
