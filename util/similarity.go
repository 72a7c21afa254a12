// Package util - bounded string similarity
package util

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// CalculateSimilarity returns a score in [0,1] for two normalized strings.
// Containment is scored as len(shorter)/len(longer) before falling back to
// normalized edit distance. Lengths are counted in runes.
func CalculateSimilarity(a, b string) float64 {
	s1 := strings.ToLower(a)
	s2 := strings.ToLower(b)

	if s1 == s2 {
		return 1
	}

	len1 := utf8.RuneCountInString(s1)
	len2 := utf8.RuneCountInString(s2)
	if len1 == 0 || len2 == 0 {
		return 0
	}

	longer, shorter := len1, len2
	if shorter > longer {
		longer, shorter = shorter, longer
	}

	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return float64(shorter) / float64(longer)
	}

	distance := levenshtein.Distance(s1, s2, nil)
	return 1 - float64(distance)/float64(longer)
}
