package pipeline

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// TitleSimilarity scores two titles in [0, 1]. Containment of one
// title in the other (case-insensitive) scores a flat 0.9; otherwise
// the score is 1 - distance/maxLen. Two empty titles are identical.
func TitleSimilarity(title1, title2 string) float64 {
	t1 := strings.ToLower(strings.TrimSpace(title1))
	t2 := strings.ToLower(strings.TrimSpace(title2))

	if t1 == "" && t2 == "" {
		return 1.0
	}

	if strings.Contains(t1, t2) || strings.Contains(t2, t1) {
		if t1 == t2 {
			return 1.0
		}
		return 0.9
	}

	maxLen := len([]rune(t1))
	if l := len([]rune(t2)); l > maxLen {
		maxLen = l
	}

	distance := levenshtein.ComputeDistance(t1, t2)
	return 1 - float64(distance)/float64(maxLen)
}
