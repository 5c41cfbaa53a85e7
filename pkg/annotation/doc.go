// Package annotation is the entry point for decoding annotation cells.
//
// Annotators of a literature review record findings in spreadsheet cells
// using a small bracketed notation:
//
//	[Quantum gates: X, H], [Shots: 200, 300]     keyed blocks -> mapping
//	[Quantum state], [Quantum gate]              bare blocks  -> list
//	[Specific: [H gates: 233], [Pauli-X gates]]  nested groups stay intact
//	[Oracle: Exact <checked twice, see appendix>] comments are dropped
//	[Un-specified]                               no data
//
// ParseCell and ParseColumn use the default policy (skip un-specified keys
// and values). Use the parser package for other policies, diagnostics and
// concurrent column parsing, and the validator package for linting.
//
// # Basic Usage
//
//	v := annotation.ParseCell("[Key: A, B, C]")
//	fmt.Println(v.Keys()) // [Key]
//
//	values := annotation.ParseColumn(cells)
//	for i, v := range values {
//	    fmt.Println(ids[i], v.Kind)
//	}
package annotation
