package pipeline

import (
	"context"
	"fmt"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage"
)

// similarityThreshold is strict: a fuzzy match needs similarity
// strictly greater than 0.8.
const similarityThreshold = 0.8

// DuplicateDetector checks a candidate against already-stored articles:
// exact URL, exact external id, then fuzzy title among same-day
// publications. First hit short-circuits; detection reports *a* match,
// not the best one.
type DuplicateDetector struct {
	store storage.Store
}

func NewDuplicateDetector(store storage.Store) *DuplicateDetector {
	return &DuplicateDetector{store: store}
}

func (d *DuplicateDetector) FindDuplicate(ctx context.Context, candidate domain.Article) (*domain.StoredArticle, error) {
	if candidate.URL != "" {
		existing, err := d.store.FindArticleByURL(ctx, candidate.URL)
		if err != nil {
			return nil, fmt.Errorf("duplicate lookup by url: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	if candidate.ExternalID != "" {
		existing, err := d.store.FindArticleByExternalID(ctx, candidate.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("duplicate lookup by external id: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	if candidate.Title != "" && !candidate.PublishedAt.IsZero() {
		sameDay, err := d.store.FindArticlesPublishedOn(ctx, candidate.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("duplicate lookup by day: %w", err)
		}
		for i := range sameDay {
			if TitleSimilarity(candidate.Title, sameDay[i].Title) > similarityThreshold {
				return &sameDay[i], nil
			}
		}
	}

	return nil, nil
}
