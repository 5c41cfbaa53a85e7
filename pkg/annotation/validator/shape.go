package validator

import (
	"fmt"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
)

// ShapeValidator flags columns whose cells disagree on keyed versus bare
// notation. Downstream aggregation usually expects one shape per column.
type ShapeValidator struct{}

// NewShapeValidator creates a shape validator.
func NewShapeValidator() *ShapeValidator {
	return &ShapeValidator{}
}

// Validate reports the minority shape of a column, one diagnostic per
// minority cell.
func (v *ShapeValidator) Validate(column string, results []parser.Result) *errors.ErrorList {
	diags := errors.NewErrorList()

	var mappings, lists []int
	for row, res := range results {
		switch res.Value.Kind {
		case ast.KindMapping:
			mappings = append(mappings, row)
		case ast.KindList:
			lists = append(lists, row)
		}
	}

	if len(mappings) == 0 || len(lists) == 0 {
		return diags
	}

	minority, majority := lists, ast.KindMapping
	if len(lists) > len(mappings) {
		minority, majority = mappings, ast.KindList
	}

	for _, row := range minority {
		diags.AddError(errors.ErrorTypeStructural, errors.SeverityWarning,
			fmt.Sprintf("cell is %s but most cells in the column are %s",
				results[row].Value.Kind, majority),
			ast.Location{Column: column, Row: row + 1})
	}

	return diags
}
