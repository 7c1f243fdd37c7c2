// Package storage defines the persistence contract the aggregation
// pipeline consumes. Implementations live in subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/google/uuid"
)

// ErrDuplicateArticle marks a unique-constraint violation on url or
// external_id. The storage layer is the authoritative dedup backstop
// when concurrent runs race past the in-memory detector, so callers
// treat this as a silent drop, not a failure.
var ErrDuplicateArticle = errors.New("article already exists")

type Store interface {
	// FindArticleByURL returns nil, nil when no article matches.
	FindArticleByURL(ctx context.Context, url string) (*domain.StoredArticle, error)

	// FindArticleByExternalID returns nil, nil when no article matches.
	FindArticleByExternalID(ctx context.Context, externalID string) (*domain.StoredArticle, error)

	// FindArticlesPublishedOn returns every article published on the
	// same UTC calendar day as the given time.
	FindArticlesPublishedOn(ctx context.Context, day time.Time) ([]domain.StoredArticle, error)

	// GetOrCreateSource resolves a source dimension by its natural
	// key, creating it on first encounter.
	GetOrCreateSource(ctx context.Context, identifier, displayName string) (domain.Source, error)

	// GetOrCreateCategory resolves a category dimension by slug,
	// creating it on first encounter.
	GetOrCreateCategory(ctx context.Context, name string) (domain.Category, error)

	// CreateArticle persists one article atomically. Returns
	// ErrDuplicateArticle when url or external_id already exists.
	CreateArticle(ctx context.Context, a domain.Article, sourceID, categoryID uuid.UUID) (domain.StoredArticle, error)
}
