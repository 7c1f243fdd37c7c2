package router

import (
	"net/http"

	"github.com/emmanuelr20/innos-news-aggregagator/pkg/server"
	"github.com/labstack/echo/v4"
)

type HealthRouter struct {
	e       *echo.Echo
	checker server.HealthChecker
}

func NewHealthRouter(e *echo.Echo, checker server.HealthChecker) *HealthRouter {
	return &HealthRouter{e: e, checker: checker}
}

func (r *HealthRouter) Bind() {
	r.e.GET("/healthz", r.healthHandler)
}

func (r *HealthRouter) healthHandler(c echo.Context) error {
	if !r.checker.Healthy(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
