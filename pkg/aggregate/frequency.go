package aggregate

import (
	"sort"

	"slr-hq/atlas/pkg/annotation/ast"
)

// DefaultOthersLabel is the bucket BucketRare folds rare values into.
const DefaultOthersLabel = "Others"

// Count is a value and how often it occurs.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Frequencies counts items, most frequent first. Ties keep the order in
// which values first appeared.
func Frequencies(items []string) []Count {
	pos := make(map[string]int)
	var counts []Count
	for _, item := range items {
		if i, ok := pos[item]; ok {
			counts[i].Count++
			continue
		}
		pos[item] = len(counts)
		counts = append(counts, Count{Value: item, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// BucketRare replaces every item occurring at most threshold times by label.
// An empty label means DefaultOthersLabel.
func BucketRare(items []string, threshold int, label string) []string {
	if label == "" {
		label = DefaultOthersLabel
	}

	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[item]++
	}

	out := make([]string, len(items))
	for i, item := range items {
		if counts[item] <= threshold {
			out[i] = label
			continue
		}
		out[i] = item
	}
	return out
}

// Distinct returns the number of different items.
func Distinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[item] = struct{}{}
	}
	return len(seen)
}

// Tags flattens the bare tokens of list-shaped (and mixed) cells.
func Tags(values []ast.Value) []string {
	var tags []string
	for _, v := range values {
		if v.HasList() {
			tags = append(tags, v.Tags...)
		}
	}
	return tags
}

// Sizes returns the number of entries of each cell: keys for mappings,
// tokens for lists and zero for empty cells.
func Sizes(values []ast.Value) []int {
	sizes := make([]int, len(values))
	for i, v := range values {
		sizes[i] = len(v.Entries) + len(v.Tags)
	}
	return sizes
}
