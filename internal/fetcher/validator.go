package fetcher

import "github.com/emmanuelr20/innos-news-aggregagator/internal/domain"

// Valid reports whether a transformed record carries the mandatory
// fields. Records failing this check are dropped silently, never
// reported as pipeline failures.
func Valid(a domain.Article) bool {
	return a.Title != "" && a.URL != "" && !a.PublishedAt.IsZero()
}
