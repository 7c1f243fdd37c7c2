// Package pg implements the storage contract on PostgreSQL via pgx.
package pg

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schema string

const uniqueViolationCode = "23505"

type Store struct {
	pool *ConnectionPool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{pool: pool}
}

// InitSchema creates the tables and unique constraints if absent.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.pool.conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

const articleColumns = `id, title, content, summary, url, image_url, published_at, author, external_id, source_id, category_id, created_at`

func (s *Store) FindArticleByURL(ctx context.Context, url string) (*domain.StoredArticle, error) {
	return s.findArticle(ctx, `SELECT `+articleColumns+` FROM articles WHERE url = $1`, url)
}

func (s *Store) FindArticleByExternalID(ctx context.Context, externalID string) (*domain.StoredArticle, error) {
	return s.findArticle(ctx, `SELECT `+articleColumns+` FROM articles WHERE external_id = $1`, externalID)
}

func (s *Store) findArticle(ctx context.Context, query string, arg any) (*domain.StoredArticle, error) {
	row := s.pool.conn.QueryRow(ctx, query, arg)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query article: %w", err)
	}
	return &a, nil
}

func (s *Store) FindArticlesPublishedOn(ctx context.Context, day time.Time) ([]domain.StoredArticle, error) {
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := s.pool.conn.Query(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE published_at >= $1 AND published_at < $2`,
		dayStart, dayEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles by day: %w", err)
	}
	defer rows.Close()

	var out []domain.StoredArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetOrCreateSource(ctx context.Context, identifier, displayName string) (domain.Source, error) {
	// Upsert keeps the natural key unique while refreshing the display
	// name when a non-empty one arrives later.
	row := s.pool.conn.QueryRow(ctx, `
		INSERT INTO sources (id, name, display_name, is_active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (name) DO UPDATE
		SET display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), sources.display_name)
		RETURNING id, name, display_name, is_active`,
		uuid.New(), identifier, displayName,
	)

	var src domain.Source
	if err := row.Scan(&src.ID, &src.Name, &src.DisplayName, &src.Active); err != nil {
		return domain.Source{}, fmt.Errorf("failed to get or create source %q: %w", identifier, err)
	}
	return src, nil
}

func (s *Store) GetOrCreateCategory(ctx context.Context, name string) (domain.Category, error) {
	slug := stringsutil.Slugify(name)

	row := s.pool.conn.QueryRow(ctx, `
		INSERT INTO categories (id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id, name, slug`,
		uuid.New(), stringsutil.Capitalize(strings.TrimSpace(name)), slug,
	)

	var cat domain.Category
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
		return domain.Category{}, fmt.Errorf("failed to get or create category %q: %w", name, err)
	}
	return cat, nil
}

func (s *Store) CreateArticle(ctx context.Context, a domain.Article, sourceID, categoryID uuid.UUID) (domain.StoredArticle, error) {
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

	_, err := s.pool.conn.Exec(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		stored.ID, stored.Title, stored.Content, stored.Summary, stored.URL,
		stored.ImageURL, stored.PublishedAt, stored.Author, stored.ExternalID,
		stored.SourceID, stored.CategoryID, stored.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.StoredArticle{}, storage.ErrDuplicateArticle
		}
		return domain.StoredArticle{}, fmt.Errorf("failed to insert article: %w", err)
	}

	return stored, nil
}

func scanArticle(row pgx.Row) (domain.StoredArticle, error) {
	var a domain.StoredArticle
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Summary, &a.URL, &a.ImageURL,
		&a.PublishedAt, &a.Author, &a.ExternalID, &a.SourceID, &a.CategoryID, &a.CreatedAt,
	)
	return a, err
}
