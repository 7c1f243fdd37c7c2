// Package memory is a mutex-guarded in-memory Store used by tests and
// local runs without a database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	articles   map[uuid.UUID]domain.StoredArticle
	byURL      map[string]uuid.UUID
	byExternal map[string]uuid.UUID
	sources    map[string]domain.Source
	categories map[string]domain.Category
}

func NewStore() *Store {
	return &Store{
		articles:   make(map[uuid.UUID]domain.StoredArticle),
		byURL:      make(map[string]uuid.UUID),
		byExternal: make(map[string]uuid.UUID),
		sources:    make(map[string]domain.Source),
		categories: make(map[string]domain.Category),
	}
}

func (s *Store) FindArticleByURL(_ context.Context, url string) (*domain.StoredArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byURL[url]
	if !ok {
		return nil, nil
	}
	a := s.articles[id]
	return &a, nil
}

func (s *Store) FindArticleByExternalID(_ context.Context, externalID string) (*domain.StoredArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byExternal[externalID]
	if !ok {
		return nil, nil
	}
	a := s.articles[id]
	return &a, nil
}

func (s *Store) FindArticlesPublishedOn(_ context.Context, day time.Time) ([]domain.StoredArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target := day.UTC().Format(time.DateOnly)
	var out []domain.StoredArticle
	for _, a := range s.articles {
		if a.PublishedAt.UTC().Format(time.DateOnly) == target {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) GetOrCreateSource(_ context.Context, identifier, displayName string) (domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if src, ok := s.sources[identifier]; ok {
		return src, nil
	}
	src := domain.Source{
		ID:          uuid.New(),
		Name:        identifier,
		DisplayName: displayName,
		Active:      true,
	}
	s.sources[identifier] = src
	return src, nil
}

func (s *Store) GetOrCreateCategory(_ context.Context, name string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := stringsutil.Slugify(name)
	if cat, ok := s.categories[slug]; ok {
		return cat, nil
	}
	cat := domain.Category{
		ID:   uuid.New(),
		Name: stringsutil.Capitalize(strings.TrimSpace(name)),
		Slug: slug,
	}
	s.categories[slug] = cat
	return cat, nil
}

func (s *Store) CreateArticle(_ context.Context, a domain.Article, sourceID, categoryID uuid.UUID) (domain.StoredArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byURL[a.URL]; exists {
		return domain.StoredArticle{}, storage.ErrDuplicateArticle
	}
	if _, exists := s.byExternal[a.ExternalID]; exists {
		return domain.StoredArticle{}, storage.ErrDuplicateArticle
	}

	stored := domain.StoredArticle{
		ID:          uuid.New(),
		Title:       a.Title,
		Content:     a.Content,
		Summary:     a.Summary,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		Author:      a.Author,
		ExternalID:  a.ExternalID,
		SourceID:    sourceID,
		CategoryID:  categoryID,
		CreatedAt:   time.Now(),
	}
	s.articles[stored.ID] = stored
	s.byURL[a.URL] = stored.ID
	s.byExternal[a.ExternalID] = stored.ID
	return stored, nil
}

// Len reports the number of stored articles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}
