// Package pipeline holds the per-record processing stages: normalize,
// sanitize, categorize and duplicate detection. Every stage is a pure
// function over an article value; none mutates shared state.
package pipeline

import (
	"regexp"
	"strings"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
)

var authorPrefix = regexp.MustCompile(`(?i)^(by\s+|author:\s*)`)

type Normalizer struct {
	now func() time.Time
}

type NormalizerOption func(*Normalizer)

// WithClock pins the timestamp used for missing publish dates.
func WithClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) { n.now = now }
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize trims text fields, defaults the publish timestamp to the
// ingestion time, derives a stable external id when the provider
// supplied none, and strips author-prefix noise.
func (n *Normalizer) Normalize(a domain.Article) domain.Article {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	a.Summary = strings.TrimSpace(a.Summary)
	a.URL = strings.TrimSpace(a.URL)

	// Best-effort default, not a validation failure.
	if a.PublishedAt.IsZero() {
		a.PublishedAt = n.now()
	}

	// Identical content from the same provider collapses stably even
	// across repeated fetches.
	if a.ExternalID == "" {
		a.ExternalID = stringsutil.SHA1Hex(a.URL, a.Title)
	}

	if a.Author != "" {
		a.Author = authorPrefix.ReplaceAllString(strings.TrimSpace(a.Author), "")
	}

	return a
}
