package pipeline

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryKeywords pairs one category with its keyword list. Tables
// are ordered slices, not maps: the position is the priority used to
// keep classification deterministic.
type CategoryKeywords struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DefaultKeywordTable returns the built-in category vocabulary in its
// fixed priority order.
func DefaultKeywordTable() []CategoryKeywords {
	return []CategoryKeywords{
		{Name: "technology", Keywords: []string{"tech", "technology", "software", "ai", "artificial intelligence", "computer", "digital", "internet", "cyber"}},
		{Name: "business", Keywords: []string{"business", "economy", "finance", "market", "stock", "trade", "company", "corporate", "investment"}},
		{Name: "politics", Keywords: []string{"politics", "government", "election", "policy", "congress", "senate", "president", "political"}},
		{Name: "health", Keywords: []string{"health", "medical", "medicine", "hospital", "doctor", "disease", "treatment", "healthcare"}},
		{Name: "science", Keywords: []string{"science", "research", "study", "scientist", "discovery", "experiment", "scientific"}},
		{Name: "sports", Keywords: []string{"sports", "football", "basketball", "baseball", "soccer", "tennis", "game", "team", "player"}},
		{Name: "entertainment", Keywords: []string{"entertainment", "movie", "film", "music", "celebrity", "actor", "actress", "show"}},
		{Name: "world", Keywords: []string{"world", "international", "global", "country", "nation", "foreign", "diplomatic"}},
	}
}

// LoadKeywordTable reads a category keyword table from YAML, e.g.
//
//   - name: technology
//     keywords: [tech, software]
//   - name: business
//     keywords: [market, finance]
//
// List order defines category priority.
func LoadKeywordTable(r io.Reader) ([]CategoryKeywords, error) {
	var table []CategoryKeywords
	if err := yaml.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to decode keyword table: %w", err)
	}

	for _, entry := range table {
		if entry.Name == "" {
			return nil, fmt.Errorf("keyword table entry without a name")
		}
		if len(entry.Keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", entry.Name)
		}
		for _, kw := range entry.Keywords {
			// An empty keyword matches everywhere and would hijack
			// every classification.
			if strings.TrimSpace(kw) == "" {
				return nil, fmt.Errorf("category %q has an empty keyword", entry.Name)
			}
		}
	}
	return table, nil
}
