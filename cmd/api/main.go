package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/app"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/router"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/server"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	srvCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("failed to load server configuration", "error", err)
		os.Exit(1)
	}

	a, err := app.Bootstrap(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to bootstrap", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	s := server.NewServer(echo.New(), srvCfg)

	router.NewAggregateRouter(s.Echo, a.Orchestrator, a.Sources.Names()).Bind()
	router.NewHealthRouter(s.Echo, a.Health).Bind()

	slog.Info("starting api server", "port", srvCfg.Port)
	if err := s.Start(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
