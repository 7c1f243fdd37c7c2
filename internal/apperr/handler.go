package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var use *UnknownSourceError
		if errors.As(err, &use) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": use.Error(), "title": "unknown source"})
			return
		}

		var eae *ExternalAPIError
		if errors.As(err, &eae) {
			_ = c.JSON(http.StatusBadGateway, map[string]string{"error": eae.Error(), "title": "upstream failure"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
