// Package ast provides the data model for parsed annotation cells.
//
// Annotation cells are spreadsheet cells written in a small bracketed
// language, for example:
//
//	[Quantum gates: X, H], [Shots: 200, 300]
//	[Quantum state], [Quantum gate]
//
// Parsing a cell yields a Value, a tagged variant whose Kind records which
// shape the cell was written in:
//
//	KindEmpty   - no usable data (ineligible cell, sentinel, or everything filtered)
//	KindMapping - keyed blocks, ordered key -> values
//	KindList    - bare blocks, flat token list
//	KindMixed   - keyed and bare blocks, only when the parser preserves both
//
// All positional information is carried by Location so diagnostics can point
// at the row and byte offset of the offending text.
//
// # Basic Usage
//
//	v := annotation.ParseCell("[Quantum gates: X, H]")
//	if v.Kind == ast.KindMapping {
//	    gates, _ := v.Get("Quantum gates")
//	    fmt.Println(gates) // [X H]
//	}
package ast
