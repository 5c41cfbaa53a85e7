package numeric

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMinMax(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		lo, hi float64
		ok     bool
	}{
		{"mixed ranges", []string{"300", "233", "From 100 to 400", "500"}, 100, 500, true},
		{"range bounds", []string{"From 1 to 32", "1", "3", "From 30 to 312"}, 1, 312, true},
		{"single", []string{"2"}, 2, 2, true},
		{"from cell", []string{"300", "233", "From 6 to 66"}, 6, 300, true},
		{"lowercase", []string{"from 2.5 to 7"}, 2.5, 7, true},
		{"non numeric ignored", []string{"many", "", "12"}, 12, 12, true},
		{"negative", []string{"-3", "From -10 to 0"}, -10, 0, true},
		{"nothing numeric", []string{"Quantum state"}, 0, 0, false},
		{"empty", nil, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := MinMax(tt.items)
			if ok != tt.ok || lo != tt.lo || hi != tt.hi {
				t.Errorf("MinMax(%q) = %v, %v, %v, want %v, %v, %v", tt.items, lo, hi, ok, tt.lo, tt.hi, tt.ok)
			}
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		item string
		want []float64
	}{
		{"42", []float64{42}},
		{" 4.5 ", []float64{4.5}},
		{"From 6 to 66", []float64{6, 66}},
		{"FROM 1 TO 2 qubits", []float64{1, 2}},
		{"From x to y", nil},
		{"From 1.2.3 to 4", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ParseRange(tt.item)); diff != "" {
			t.Errorf("ParseRange(%q) mismatch (-want +got):\n%s", tt.item, diff)
		}
	}
}
