package router

import (
	"context"
	"net/http"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/aggregator"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/labstack/echo/v4"
)

// Runner triggers an aggregation run; the orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, filters domain.Filters, sourceID string) (aggregator.Result, error)
}

type aggregateRequest struct {
	Source   string `json:"source"`
	Limit    int    `json:"limit"`
	Page     int    `json:"page"`
	Category string `json:"category"`
	Query    string `json:"q"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type AggregateRouter struct {
	e       *echo.Echo
	runner  Runner
	sources []string
}

func NewAggregateRouter(e *echo.Echo, runner Runner, sources []string) *AggregateRouter {
	return &AggregateRouter{
		e:       e,
		runner:  runner,
		sources: sources,
	}
}

func (r *AggregateRouter) Bind() {
	r.e.POST("/api/aggregate", r.aggregateHandler)
	r.e.GET("/api/sources", r.sourcesHandler)
}

func (r *AggregateRouter) aggregateHandler(c echo.Context) error {
	var req aggregateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	filters, err := req.filters()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := r.runner.Run(c.Request().Context(), filters, req.Source)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (r *AggregateRouter) sourcesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"sources": r.sources})
}

func (req aggregateRequest) filters() (domain.Filters, error) {
	f := domain.Filters{
		Limit:    req.Limit,
		Page:     req.Page,
		Category: req.Category,
		Query:    req.Query,
	}

	var err error
	if req.From != "" {
		if f.From, err = parseDay(req.From); err != nil {
			return domain.Filters{}, err
		}
	}
	if req.To != "" {
		if f.To, err = parseDay(req.To); err != nil {
			return domain.Filters{}, err
		}
	}
	return f, nil
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
