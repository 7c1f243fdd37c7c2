// Package cache holds short-lived fetch responses keyed by source and
// filter parameters. Writes are best-effort and last-writer-wins; a
// backend failure degrades to a cache miss, never an error.
package cache

import (
	"context"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Article, bool)
	Put(ctx context.Context, key string, articles []domain.Article, ttl time.Duration)
}
