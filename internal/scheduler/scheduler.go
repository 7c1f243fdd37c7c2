// Package scheduler drives recurring aggregation runs on a cron
// expression. Each run gets its own wall-clock budget and a small
// number of whole-run attempts with a fixed pause between them; the
// per-request retries inside the fetcher stay separate from this.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/aggregator"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/robfig/cron/v3"
)

// Runner is the aggregation entry point the scheduler invokes.
type Runner interface {
	Run(ctx context.Context, filters domain.Filters, sourceID string) (aggregator.Result, error)
}

type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	policy config.RunConfig
}

// New registers the aggregation job under the given cron spec.
func New(spec string, runner Runner, policy config.RunConfig) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		runner: runner,
		policy: policy,
	}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running job to finish before returning.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("gave up waiting for scheduled run to finish", "error", ctx.Err())
	}
}

// RunOnce executes a single budgeted run outside the cron cadence.
func (s *Scheduler) RunOnce(ctx context.Context) (aggregator.Result, error) {
	return s.runBudgeted(ctx)
}

func (s *Scheduler) runOnce() {
	if _, err := s.runBudgeted(context.Background()); err != nil {
		slog.Error("scheduled aggregation run failed", "error", err)
	}
}

// runBudgeted applies the run policy: the whole run must finish inside
// the budget, and a failed run is retried a fixed number of times with
// a constant pause rather than an escalating one. A timed-out attempt
// counts as a failed attempt.
func (s *Scheduler) runBudgeted(ctx context.Context) (aggregator.Result, error) {
	var lastErr error

	for attempt := 1; attempt <= s.policy.Attempts; attempt++ {
		result, err := s.runWithinBudget(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		slog.Warn("aggregation run attempt failed",
			"attempt", attempt,
			"max_attempts", s.policy.Attempts,
			"error", err,
		)

		if attempt == s.policy.Attempts {
			break
		}
		select {
		case <-time.After(s.policy.Backoff):
		case <-ctx.Done():
			return aggregator.Result{}, ctx.Err()
		}
	}
	return aggregator.Result{}, lastErr
}

func (s *Scheduler) runWithinBudget(ctx context.Context) (aggregator.Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.policy.Timeout)
	defer cancel()

	start := time.Now()
	result, err := s.runner.Run(runCtx, domain.Filters{}, "")
	if err != nil {
		return aggregator.Result{}, err
	}

	// An all-sources run isolates per-source failures and returns
	// cleanly even when the budget expired mid-fetch. The spent budget
	// itself marks the attempt as failed.
	if runCtx.Err() != nil {
		return aggregator.Result{}, runCtx.Err()
	}

	slog.Info("scheduled aggregation run finished",
		"accepted", result.Accepted,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return result, nil
}
