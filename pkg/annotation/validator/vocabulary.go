package validator

import (
	"fmt"
	"strings"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
)

// VocabularyValidator flags keys that look like misspellings of a more
// frequent key in the same column.
type VocabularyValidator struct {
	// MaxDistance is the largest edit distance treated as a typo.
	MaxDistance int
}

// NewVocabularyValidator creates a vocabulary validator with a typo
// distance of 2.
func NewVocabularyValidator() *VocabularyValidator {
	return &VocabularyValidator{MaxDistance: 2}
}

type keyUse struct {
	count int
	first ast.Location
}

// Validate checks every key against the other keys of the column.
func (v *VocabularyValidator) Validate(column string, results []parser.Result) *errors.ErrorList {
	diags := errors.NewErrorList()

	uses := make(map[string]*keyUse)
	var order []string
	for row, res := range results {
		for _, b := range res.Blocks {
			if !b.Keyed {
				continue
			}
			u, ok := uses[b.Key]
			if !ok {
				u = &keyUse{first: ast.Location{Column: column, Row: row + 1, Offset: b.Offset}}
				uses[b.Key] = u
				order = append(order, b.Key)
			}
			u.count++
		}
	}

	for _, key := range order {
		u := uses[key]
		for _, other := range order {
			if other == key || uses[other].count <= u.count {
				continue
			}
			if !v.similar(key, other) {
				continue
			}
			diags.AddErrorWithSuggestion(errors.ErrorTypeStructural, errors.SeverityWarning,
				fmt.Sprintf("key %q (%d use(s)) looks like %q (%d use(s))", key, u.count, other, uses[other].count),
				u.first, fmt.Sprintf("Did you mean '%s'?", other))
			break
		}
	}

	return diags
}

func (v *VocabularyValidator) similar(a, b string) bool {
	na, nb := normalizeKey(a), normalizeKey(b)
	if na == nb {
		return true
	}
	return editDistance(na, nb) <= v.MaxDistance
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// editDistance is the Levenshtein distance over runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
