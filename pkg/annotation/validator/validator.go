package validator

import (
	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
)

// Report is the lint outcome for one column.
type Report struct {
	Column      string
	Cells       int
	Kinds       map[ast.Kind]int
	Diagnostics *errors.ErrorList
}

// Failed reports whether the column should fail linting. Error diagnostics
// always fail; in strict mode warnings fail too.
func (r *Report) Failed(strict bool) bool {
	if len(r.Diagnostics.BySeverity(errors.SeverityError)) > 0 {
		return true
	}
	return strict && len(r.Diagnostics.BySeverity(errors.SeverityWarning)) > 0
}

// Validator orchestrates the lint passes.
type Validator struct {
	parser      *parser.Parser
	vocabulary  *VocabularyValidator
	shape       *ShapeValidator
	includeInfo bool
}

// NewValidator creates a validator that parses cells with p.
func NewValidator(p *parser.Parser) *Validator {
	if p == nil {
		p = parser.NewParser()
	}
	return &Validator{
		parser:     p,
		vocabulary: NewVocabularyValidator(),
		shape:      NewShapeValidator(),
	}
}

// WithInfo includes info-level diagnostics (dropped sentinels, empty blocks)
// in reports. They are left out by default.
func (v *Validator) WithInfo(include bool) *Validator {
	v.includeInfo = include
	return v
}

// Validate lints one column.
func (v *Validator) Validate(column string, cells []string) *Report {
	results := v.parser.InspectColumn(column, cells)

	report := &Report{
		Column:      column,
		Cells:       len(cells),
		Kinds:       make(map[ast.Kind]int),
		Diagnostics: errors.NewErrorList(),
	}

	for _, res := range results {
		report.Kinds[res.Value.Kind]++
		for _, d := range res.Diagnostics.Errors {
			if d.Severity == errors.SeverityInfo && !v.includeInfo {
				continue
			}
			report.Diagnostics.Add(d)
		}
	}

	report.Diagnostics.Merge(v.vocabulary.Validate(column, results))
	report.Diagnostics.Merge(v.shape.Validate(column, results))

	return report
}
