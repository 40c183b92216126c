package lexer

import (
	"fmt"
	"strings"

	"github.com/omniql-engine/sqlkit/mapping"
)

// ParseError represents an error with position info
type ParseError struct {
	Message  string
	Position int
	Column   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %d: %s", e.Column, e.Message)
}

// SuggestType finds the closest known column type keyword
func SuggestType(unknown string) string {
	unknown = strings.ToLower(unknown)

	var bestMatch string
	bestDistance := 999
	maxDistance := 2 // Only suggest if within 2 edits

	for keyword := range mapping.ColumnTypes {
		dist := levenshtein(unknown, keyword)
		// ties go to the alphabetically first keyword so suggestions are stable
		if dist <= maxDistance && (dist < bestDistance || (dist == bestDistance && keyword < bestMatch)) {
			bestDistance = dist
			bestMatch = keyword
		}
	}

	return bestMatch
}

// levenshtein calculates edit distance between two strings
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
