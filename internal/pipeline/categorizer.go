package pipeline

import (
	"strings"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
)

// FallbackCategory is assigned when no keyword matches or the top
// score is shared by more than one category.
const FallbackCategory = "general"

// Categorizer is a deterministic keyword-frequency classifier over an
// immutable table passed at construction.
type Categorizer struct {
	table []CategoryKeywords
}

func NewCategorizer(table []CategoryKeywords) *Categorizer {
	return &Categorizer{table: table}
}

// Categorize scores the lowercased title+content+summary against each
// category's keywords and returns the single best category. A tie at
// the maximum score, or a maximum of zero, yields the fallback — never
// an arbitrary winner among ties.
func (c *Categorizer) Categorize(a domain.Article) string {
	text := strings.ToLower(a.Title + " " + a.Content + " " + a.Summary)

	best := FallbackCategory
	bestScore := 0
	tied := false

	for _, entry := range c.table {
		score := 0
		for _, keyword := range entry.Keywords {
			score += strings.Count(text, strings.ToLower(keyword))
		}

		if score > bestScore {
			best = entry.Name
			bestScore = score
			tied = false
		} else if score == bestScore && score > 0 {
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return FallbackCategory
	}
	return best
}
