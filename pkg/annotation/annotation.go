package annotation

import (
	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/annotation/validator"
)

// ParseCell decodes one cell with the default policy.
func ParseCell(cell string) ast.Value {
	return ParseCellWith(cell, parser.DefaultOptions())
}

// ParseCellWith decodes one cell with the given policy. Strict unbalanced
// handling is ignored here; use parser.Parser.Parse to get the error.
func ParseCellWith(cell string, opts parser.Options) ast.Value {
	opts.Unbalanced = parser.UnbalancedDrop
	v, _ := parser.NewParserWithOptions(opts).Parse(cell)
	return v
}

// ParseColumn decodes a column with the default policy. The result has the
// same length as cells.
func ParseColumn(cells []string) []ast.Value {
	return ParseColumnWith(cells, parser.DefaultOptions())
}

// ParseColumnWith decodes a column with the given policy. The result has the
// same length as cells.
func ParseColumnWith(cells []string, opts parser.Options) []ast.Value {
	opts.Unbalanced = parser.UnbalancedDrop
	values, _ := parser.NewParserWithOptions(opts).ParseColumn("", cells)
	return values
}

// Lint runs every validation pass over a column with the given policy.
func Lint(column string, cells []string, opts parser.Options) *validator.Report {
	return validator.NewValidator(parser.NewParserWithOptions(opts)).Validate(column, cells)
}
