package validator

import (
	"strings"
	"testing"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
)

func TestValidator_Vocabulary(t *testing.T) {
	cells := []string{
		"[Output probability oracle: Exact]",
		"[Output probability oracle: Approximate]",
		"[Ouput probability oracle: Exact]",
	}

	report := NewValidator(nil).Validate("rq7", cells)

	if report.Cells != 3 {
		t.Errorf("Cells = %d, want 3", report.Cells)
	}
	if report.Kinds[ast.KindMapping] != 3 {
		t.Errorf("Kinds[mapping] = %d, want 3", report.Kinds[ast.KindMapping])
	}
	if report.Diagnostics.Count() != 1 {
		t.Fatalf("Count() = %d, want 1: %v", report.Diagnostics.Count(), report.Diagnostics)
	}
	d := report.Diagnostics.Errors[0]
	if d.Location.Row != 3 {
		t.Errorf("Row = %d, want 3", d.Location.Row)
	}
	if !strings.Contains(d.Suggestion, "Output probability oracle") {
		t.Errorf("Suggestion = %q", d.Suggestion)
	}
	if report.Failed(false) {
		t.Error("Failed(false) = true, want false for warnings only")
	}
	if !report.Failed(true) {
		t.Error("Failed(true) = false, want true")
	}
}

func TestValidator_CaseAndSpacing(t *testing.T) {
	cells := []string{"[Gate set: H]", "[Gate set: X]", "[gate  Set: Y]"}
	report := NewValidator(nil).Validate("rq", cells)
	if report.Diagnostics.Count() != 1 {
		t.Fatalf("Count() = %d, want 1: %v", report.Diagnostics.Count(), report.Diagnostics)
	}
}

func TestValidator_Shape(t *testing.T) {
	cells := []string{"[A: 1]", "[B: 2]", "[tag]"}
	report := NewValidator(nil).Validate("rq", cells)

	structural := report.Diagnostics.ByType(errors.ErrorTypeStructural)
	if len(structural) != 1 {
		t.Fatalf("len(structural) = %d, want 1: %v", len(structural), report.Diagnostics)
	}
	if structural[0].Location.Row != 3 {
		t.Errorf("Row = %d, want 3", structural[0].Location.Row)
	}
}

func TestValidator_InfoFiltering(t *testing.T) {
	cells := []string{"[A: 1, Un-specified]"}

	quiet := NewValidator(nil).Validate("rq", cells)
	if quiet.Diagnostics.Count() != 0 {
		t.Errorf("Count() = %d, want 0 without info", quiet.Diagnostics.Count())
	}

	verbose := NewValidator(nil).WithInfo(true).Validate("rq", cells)
	if len(verbose.Diagnostics.BySeverity(errors.SeverityInfo)) == 0 {
		t.Error("expected info diagnostics with WithInfo(true)")
	}
}

func TestValidator_StrictUnbalancedFails(t *testing.T) {
	p := parser.NewParser().WithUnbalancedPolicy(parser.UnbalancedError)
	report := NewValidator(p).Validate("rq", []string{"[a], [b"})
	if !report.Failed(false) {
		t.Error("Failed(false) = false, want true for error diagnostics")
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"ouput", "output", 1},
		{"kitten", "sitting", 3},
		{"état", "etat", 1},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
