package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"slr-hq/atlas/pkg/annotation/ast"
)

// Column is a named parsed column.
type Column struct {
	Name   string
	Values []ast.Value
}

// Combination is a set of columns that are non-empty together in Count rows.
type Combination struct {
	Columns []string `json:"columns"`
	Count   int      `json:"count"`
}

// Overlap computes UpSet combinations: for every row, the set of columns
// whose cell is non-empty, counted across rows. Rows where every column is
// empty form the combination with no columns. Combinations are sorted by
// count, most frequent first, then by first appearance. Columns must all
// have the same length.
func Overlap(columns []Column) ([]Combination, error) {
	if len(columns) == 0 {
		return nil, nil
	}

	rows := len(columns[0].Values)
	for _, c := range columns[1:] {
		if len(c.Values) != rows {
			return nil, fmt.Errorf("overlap: column %q has %d rows, column %q has %d",
				columns[0].Name, rows, c.Name, len(c.Values))
		}
	}

	pos := make(map[string]int)
	var combos []Combination

	for r := 0; r < rows; r++ {
		var present []string
		for _, c := range columns {
			if !c.Values[r].IsEmpty() {
				present = append(present, c.Name)
			}
		}

		key := strings.Join(present, "\x00")
		i, ok := pos[key]
		if !ok {
			i = len(combos)
			pos[key] = i
			combos = append(combos, Combination{Columns: present})
		}
		combos[i].Count++
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].Count > combos[j].Count
	})
	return combos, nil
}
