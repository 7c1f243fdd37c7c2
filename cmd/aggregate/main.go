package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/app"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/scheduler"
)

func main() {
	var (
		sourceID = flag.String("source", "", "aggregate a single source (newsapi, guardian, nytimes); empty means all")
		category = flag.String("category", "", "category filter")
		query    = flag.String("q", "", "free-text query")
		limit    = flag.Int("limit", 0, "page size")
		page     = flag.Int("page", 0, "page number")
		from     = flag.String("from", "", "start date (YYYY-MM-DD)")
		to       = flag.String("to", "", "end date (YYYY-MM-DD)")
		schedule = flag.String("schedule", "", "cron expression; run on a schedule instead of once")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	filters, err := buildFilters(*category, *query, *limit, *page, *from, *to)
	if err != nil {
		slog.Error("invalid filters", "error", err)
		os.Exit(1)
	}

	a, err := app.Bootstrap(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to bootstrap", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if *schedule != "" {
		runScheduled(a, cfg, *schedule)
		return
	}

	runOnce(a, cfg, filters, *sourceID)
}

func runOnce(a *app.App, cfg *config.Config, filters domain.Filters, sourceID string) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.Timeout)
	defer cancel()

	result, err := a.Orchestrator.Run(ctx, filters, sourceID)
	if err != nil {
		slog.Error("aggregation run failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		slog.Error("failed to encode result", "error", err)
		os.Exit(1)
	}
}

func runScheduled(a *app.App, cfg *config.Config, spec string) {
	s, err := scheduler.New(spec, a.Orchestrator, cfg.Run)
	if err != nil {
		slog.Error("invalid cron expression", "schedule", spec, "error", err)
		os.Exit(1)
	}

	s.Start()
	slog.Info("scheduler started", "schedule", spec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Stop(stopCtx)
	slog.Info("scheduler stopped")
}

func buildFilters(category, query string, limit, page int, from, to string) (domain.Filters, error) {
	f := domain.Filters{
		Limit:    limit,
		Page:     page,
		Category: category,
		Query:    query,
	}

	var err error
	if from != "" {
		if f.From, err = time.Parse(time.DateOnly, from); err != nil {
			return domain.Filters{}, err
		}
	}
	if to != "" {
		if f.To, err = time.Parse(time.DateOnly, to); err != nil {
			return domain.Filters{}, err
		}
	}
	return f, nil
}
