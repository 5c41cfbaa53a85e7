package dataset

import "strings"

// CleanMode selects how much bracket notation Clean removes.
type CleanMode int

const (
	// CleanAll removes every '[' and ']'.
	CleanAll CleanMode = iota
	// CleanOuter removes one enclosing pair, if the trimmed item has one.
	CleanOuter
)

// Clean strips bracket notation from items, typically the values of a
// nested key such as "[H gates: 233]".
func Clean(items []string, mode CleanMode) []string {
	out := make([]string, len(items))
	for i, item := range items {
		switch mode {
		case CleanOuter:
			item = strings.TrimSpace(item)
			if strings.HasPrefix(item, "[") && strings.HasSuffix(item, "]") && len(item) >= 2 {
				item = strings.TrimSpace(item[1 : len(item)-1])
			}
			out[i] = item
		default:
			out[i] = strings.NewReplacer("[", "", "]", "").Replace(item)
		}
	}
	return out
}

// Screening marks used by the inclusion/exclusion columns.
const (
	MarkYes = "[Y]"
	MarkNo  = "[N]"
)

// BooleanCounts counts cells that are exactly [Y] or [N] after trimming.
func BooleanCounts(cells []string) (yes, no int) {
	for _, c := range cells {
		switch strings.TrimSpace(c) {
		case MarkYes:
			yes++
		case MarkNo:
			no++
		}
	}
	return yes, no
}
