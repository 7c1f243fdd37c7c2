// Package fetcher wraps a source adapter's network call with timeout,
// bounded retry with exponential backoff, and a short-lived response
// cache keyed by request parameters.
package fetcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/apperr"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/cache"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/source"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
)

const maxResponseBytes = 4 << 20 // 4MB

type Fetcher struct {
	client   *http.Client
	cache    cache.Cache
	retries  int
	backoff  time.Duration
	cacheTTL time.Duration
}

type Option func(*Fetcher)

func WithRetries(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.retries = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) { f.backoff = d }
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

func WithCacheTTL(d time.Duration) Option {
	return func(f *Fetcher) { f.cacheTTL = d }
}

func New(c cache.Cache, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		cache:    c,
		retries:  3,
		backoff:  time.Second,
		cacheTTL: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch pulls one source's articles for the given filters: cache
// lookup first, then up to the configured number of HTTP attempts.
// The returned slice is already transformed and validated; it fails
// with *apperr.ExternalAPIError only after all retries are exhausted.
func (f *Fetcher) Fetch(ctx context.Context, adapter source.Adapter, filters domain.Filters) ([]domain.Article, error) {
	name := adapter.Name()

	if !adapter.Configured() {
		return nil, &apperr.ExternalAPIError{Source: name, Message: "api service not configured"}
	}

	key := stringsutil.SHA1Hex(name, filters.CacheKey())
	if articles, ok := f.cache.Get(ctx, key); ok {
		slog.Debug("fetch served from cache", "source", name, "count", len(articles))
		return articles, nil
	}

	requestURL := adapter.BaseURL() + adapter.Endpoint(filters)
	params := adapter.BuildParams(filters)

	var body []byte
	r := retrier{maxAttempts: f.retries, base: f.backoff}
	err := r.do(ctx, func(attempt int) error {
		b, err := f.get(ctx, name, requestURL, params.Encode())
		if err != nil {
			slog.Warn("api request attempt failed",
				"source", name,
				"attempt", attempt,
				"error", err,
			)
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	articles := f.transform(adapter, body)

	// Cached post-validation; concurrent fetches for the same key may
	// race and the last writer wins.
	f.cache.Put(ctx, key, articles, f.cacheTTL)

	return articles, nil
}

func (f *Fetcher) get(ctx context.Context, sourceName, requestURL, query string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL+"?"+query, nil)
	if err != nil {
		return nil, apperr.NewExternalAPIWrap(sourceName, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperr.NewExternalAPIWrap(sourceName, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperr.NewExternalAPIWrap(sourceName, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.NewExternalAPI(sourceName, resp.StatusCode, string(body))
	}

	return body, nil
}

func (f *Fetcher) transform(adapter source.Adapter, body []byte) []domain.Article {
	rawList := adapter.ExtractRawList(body)

	articles := make([]domain.Article, 0, len(rawList))
	dropped := 0
	for _, raw := range rawList {
		a, err := adapter.Transform(raw)
		if err != nil {
			slog.Warn("failed to transform article", "source", adapter.Name(), "error", err)
			dropped++
			continue
		}
		if !Valid(a) {
			dropped++
			continue
		}
		articles = append(articles, a)
	}

	if dropped > 0 {
		slog.Debug("dropped invalid articles", "source", adapter.Name(), "dropped", dropped, "kept", len(articles))
	}
	return articles
}
