package aggregator

import (
	"context"
	"errors"
	"log/slog"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/pipeline"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage"
)

// Writer idempotently resolves the source and category dimensions and
// persists accepted articles. Per-article failures are logged, never
// fatal to the run.
type Writer struct {
	store storage.Store
}

func NewWriter(store storage.Store) *Writer {
	return &Writer{store: store}
}

// StoredRecord pairs a persisted article with the adapter identifier
// it came from, so callers can attribute counts per source.
type StoredRecord struct {
	Article    domain.StoredArticle
	SourceName string
}

func (w *Writer) Store(ctx context.Context, articles []domain.Article) []StoredRecord {
	stored := make([]StoredRecord, 0, len(articles))

	for _, a := range articles {
		src, err := w.store.GetOrCreateSource(ctx, a.SourceID, a.SourceName)
		if err != nil {
			slog.Error("failed to resolve source", "source", a.SourceID, "error", err)
			continue
		}

		category := a.Category
		if category == "" {
			category = pipeline.FallbackCategory
		}
		cat, err := w.store.GetOrCreateCategory(ctx, category)
		if err != nil {
			slog.Error("failed to resolve category", "category", category, "error", err)
			continue
		}

		rec, err := w.store.CreateArticle(ctx, a, src.ID, cat.ID)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateArticle) {
				// A concurrent run won the race; the unique keys did
				// their backstop job.
				slog.Debug("article already stored", "source", a.SourceID, "url", a.URL)
				continue
			}
			slog.Error("failed to store article", "source", a.SourceID, "title", a.Title, "error", err)
			continue
		}

		stored = append(stored, StoredRecord{Article: rec, SourceName: a.SourceID})
	}

	return stored
}
