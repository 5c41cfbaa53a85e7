package errors

import (
	"fmt"
	"strings"
)

// SuggestClose suggests how to terminate a cell with open brackets.
func SuggestClose(depth int) string {
	if depth <= 0 {
		return ""
	}
	return fmt.Sprintf("Add %s to close the block", strings.Repeat("]", depth))
}

// SuggestColon suggests turning a bare block into a keyed block.
func SuggestColon(content string) string {
	return fmt.Sprintf("Write '[<key>: %s]' or move the tag to its own cell", strings.TrimSpace(content))
}

// SuggestName suggests a close match for an unknown name.
// It uses Levenshtein distance to find similar names.
func SuggestName(unknown string, valid []string) string {
	if len(valid) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, name := range valid {
		dist := levenshteinDistance(strings.ToLower(unknown), strings.ToLower(name))
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable (< 5 edits)
	if minDistance < 5 {
		return fmt.Sprintf("Did you mean '%s'?", bestMatch)
	}

	if len(valid) > 5 {
		return fmt.Sprintf("Valid names include: %s, ...", strings.Join(valid[:5], ", "))
	}
	return fmt.Sprintf("Valid names: %s", strings.Join(valid, ", "))
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
