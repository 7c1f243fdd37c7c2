// Package app wires configuration into a ready-to-run aggregation
// stack. Backends are picked from the environment: postgres and redis
// when DATABASE_URL / REDIS_ADDR are set, in-memory fallbacks
// otherwise so the binaries run without external services.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/aggregator"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/cache"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/fetcher"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/pipeline"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/source"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage/memory"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage/pg"
	pkgserver "github.com/emmanuelr20/innos-news-aggregagator/pkg/server"
)

type App struct {
	Config       *config.Config
	Sources      *source.Registry
	Orchestrator *aggregator.Orchestrator
	Health       pkgserver.HealthChecker

	closers []func()
}

func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config: cfg,
		Health: pkgserver.NewOkHealthChecker(),
	}

	store, err := a.newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a.Sources = source.NewRegistry(
		source.NewNewsAPI(cfg.NewsAPI),
		source.NewGuardian(cfg.Guardian),
		source.NewNYTimes(cfg.NYTimes),
	)

	f := fetcher.New(a.newCache(cfg),
		fetcher.WithRetries(cfg.Fetch.Retries),
		fetcher.WithBackoff(cfg.Fetch.Backoff),
		fetcher.WithTimeout(cfg.Fetch.Timeout),
		fetcher.WithCacheTTL(cfg.Fetch.CacheTTL),
	)

	a.Orchestrator = aggregator.NewOrchestrator(
		a.Sources,
		f,
		pipeline.NewNormalizer(),
		pipeline.NewSanitizer(),
		pipeline.NewCategorizer(pipeline.DefaultKeywordTable()),
		pipeline.NewDuplicateDetector(store),
		aggregator.NewWriter(store),
	)
	return a, nil
}

func (a *App) newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		return memory.NewStore(), nil
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.closers = append(a.closers, pool.Close)

	store := pg.NewStore(pool)
	if err := store.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	a.Health = pkgserver.HealthCheckerFunc(func(ctx context.Context) bool {
		return pool.Ping(ctx) == nil
	})
	return store, nil
}

func (a *App) newCache(cfg *config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory()
	}

	r, err := cache.NewRedis(cfg.RedisAddr)
	if err != nil {
		slog.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		return cache.NewMemory()
	}
	a.closers = append(a.closers, func() {
		if err := r.Close(); err != nil {
			slog.Warn("closing redis client", "error", err)
		}
	})
	return r
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
