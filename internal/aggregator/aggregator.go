// Package aggregator fans out over the configured source adapters,
// isolates per-source failures, runs every record through the
// processing stages and hands the survivors to storage.
package aggregator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/apperr"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/pipeline"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/source"
)

// ArticleFetcher is the resilient fetch dependency.
type ArticleFetcher interface {
	Fetch(ctx context.Context, adapter source.Adapter, filters domain.Filters) ([]domain.Article, error)
}

// Result is what the trigger surface reports back to the scheduler or
// CLI that started the run.
type Result struct {
	Accepted  int            `json:"accepted_count"`
	PerSource map[string]int `json:"source_counts"`
}

type Orchestrator struct {
	sources     *source.Registry
	fetcher     ArticleFetcher
	normalizer  *pipeline.Normalizer
	sanitizer   pipeline.Sanitizer
	categorizer *pipeline.Categorizer
	dupes       *pipeline.DuplicateDetector
	writer      *Writer
}

func NewOrchestrator(
	sources *source.Registry,
	fetcher ArticleFetcher,
	normalizer *pipeline.Normalizer,
	sanitizer pipeline.Sanitizer,
	categorizer *pipeline.Categorizer,
	dupes *pipeline.DuplicateDetector,
	writer *Writer,
) *Orchestrator {
	return &Orchestrator{
		sources:     sources,
		fetcher:     fetcher,
		normalizer:  normalizer,
		sanitizer:   sanitizer,
		categorizer: categorizer,
		dupes:       dupes,
		writer:      writer,
	}
}

// AggregateAll fans out over every registered adapter in parallel and
// concatenates the survivors. One source's failure never aborts the
// run; it is logged and the remaining sources still contribute.
func (o *Orchestrator) AggregateAll(ctx context.Context, filters domain.Filters) []domain.Article {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		all []domain.Article
	)

	for _, adapter := range o.sources.All() {
		if !adapter.Configured() {
			slog.Warn("news source not configured, skipping", "source", adapter.Name())
			continue
		}

		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			articles, err := o.AggregateOne(ctx, name, filters)
			if err != nil {
				slog.Error("failed to aggregate articles from source", "source", name, "error", err)
				return
			}
			slog.Info("aggregated articles from source", "source", name, "count", len(articles))

			mu.Lock()
			all = append(all, articles...)
			mu.Unlock()
		}(adapter.Name())
	}
	wg.Wait()

	return all
}

// AggregateOne runs the full per-record pipeline for a single source:
// fetch, normalize, sanitize, categorize, then drop duplicates.
func (o *Orchestrator) AggregateOne(ctx context.Context, sourceID string, filters domain.Filters) ([]domain.Article, error) {
	adapter, ok := o.sources.Get(sourceID)
	if !ok {
		return nil, apperr.NewUnknownSource(sourceID)
	}

	fetched, err := o.fetcher.Fetch(ctx, adapter, filters)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Article, 0, len(fetched))
	duplicates := 0
	for _, a := range fetched {
		a = o.normalizer.Normalize(a)
		a = o.sanitizer.Sanitize(a)
		a.Category = o.categorizer.Categorize(a)

		existing, err := o.dupes.FindDuplicate(ctx, a)
		if err != nil {
			// Lookup failures keep the record; the storage unique
			// constraints are the backstop.
			slog.Warn("duplicate lookup failed, keeping record", "source", sourceID, "title", a.Title, "error", err)
		} else if existing != nil {
			duplicates++
			continue
		}

		out = append(out, a)
	}

	if duplicates > 0 {
		slog.Debug("dropped duplicate articles", "source", sourceID, "duplicates", duplicates)
	}
	return out, nil
}

// Run is the trigger surface: aggregate from one named source or all
// of them, persist the survivors, and report per-source counts.
func (o *Orchestrator) Run(ctx context.Context, filters domain.Filters, sourceID string) (Result, error) {
	var articles []domain.Article

	if sourceID != "" {
		var err error
		articles, err = o.AggregateOne(ctx, sourceID, filters)
		if err != nil {
			return Result{}, err
		}
	} else {
		articles = o.AggregateAll(ctx, filters)
	}

	stored := o.writer.Store(ctx, articles)

	result := Result{Accepted: len(stored), PerSource: make(map[string]int)}
	for _, s := range stored {
		result.PerSource[s.SourceName]++
	}

	slog.Info("aggregation run completed",
		"requested_source", sourceID,
		"found", len(articles),
		"accepted", result.Accepted,
	)
	return result, nil
}
