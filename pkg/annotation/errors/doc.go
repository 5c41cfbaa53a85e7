// Package errors provides diagnostic types for annotation parsing.
//
// The annotation parser is permissive: malformed cells degrade to an empty
// value or lose individual blocks instead of failing. Every such degradation
// is described by an Error carrying a type, a severity, the location of the
// offending text and an optional suggestion, so that lint tooling can show
// annotators exactly what was dropped.
//
// # Error Types
//
// ErrorTypeSyntax: unterminated or stray brackets
//
// ErrorTypeStructural: blocks that cannot contribute to the cell's shape
// (bare blocks in a keyed cell, empty blocks)
//
// ErrorTypeSentinel: blocks, keys or values dropped because they carry the
// "un-specified" sentinel
//
// ErrorTypeEscape: "<" without a closing ">"
//
// # Basic Usage
//
//	list := errors.NewErrorList()
//	list.AddErrorWithSuggestion(errors.ErrorTypeSyntax, errors.SeverityWarning,
//	    "unterminated block", loc, errors.SuggestClose(cell))
//	if list.HasErrors() {
//	    fmt.Println(list.Error())
//	}
//
// Add the cell excerpt with a caret under the offending byte:
//
//	err = errors.WithContext(err, cell)
package errors
