package aggregate

import (
	"fmt"
	"sort"

	"slr-hq/atlas/pkg/annotation/ast"
)

// Posting lists the papers that mention a value.
type Posting struct {
	Value  string   `json:"value"`
	Papers []string `json:"papers"`
	Count  int      `json:"count"`
}

// Index maps every value recorded under key to the IDs of the papers that
// mention it. values and ids are zipped by row and must have the same
// length. A paper mentioning a value twice is listed once. With an empty
// key, list tokens are indexed instead. Postings are sorted by count,
// most frequent first, then by first appearance.
func Index(key string, values []ast.Value, ids []string) ([]Posting, error) {
	if len(values) != len(ids) {
		return nil, fmt.Errorf("index: %d cells but %d paper IDs", len(values), len(ids))
	}

	pos := make(map[string]int)
	var postings []Posting

	for row, v := range values {
		var items []string
		if key == "" {
			if v.HasList() {
				items = v.Tags
			}
		} else if got, ok := v.Get(key); ok {
			items = got
		}

		seen := make(map[string]bool, len(items))
		for _, item := range items {
			if seen[item] {
				continue
			}
			seen[item] = true

			i, ok := pos[item]
			if !ok {
				i = len(postings)
				pos[item] = i
				postings = append(postings, Posting{Value: item})
			}
			postings[i].Papers = append(postings[i].Papers, ids[row])
			postings[i].Count++
		}
	}

	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].Count > postings[j].Count
	})
	return postings, nil
}
