package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/apperr"
)

func TestNewExternalAPI(t *testing.T) {
	err := apperr.NewExternalAPI("newsapi", 500, `{"status":"error"}`)

	if err.Error() != "newsapi: external api request failed: status 500" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
	if err.Body != `{"status":"error"}` {
		t.Errorf("body lost: %q", err.Body)
	}
}

func TestNewExternalAPIWrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := apperr.NewExternalAPIWrap("guardian", "request failed", inner)

	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
	if err.Error() != "guardian: request failed: connection refused" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestExternalAPIError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewExternalAPI("nytimes", 429, "rate limited")

	wrapped := fmt.Errorf("fetch failed: %w", original)
	doubleWrapped := fmt.Errorf("aggregation error: %w", wrapped)

	var eae *apperr.ExternalAPIError
	if !errors.As(doubleWrapped, &eae) {
		t.Fatal("errors.As should find ExternalAPIError through double wrapping")
	}
	if eae.StatusCode != 429 {
		t.Errorf("expected status 429, got %d", eae.StatusCode)
	}
}

func TestUnknownSourceError(t *testing.T) {
	err := apperr.NewUnknownSource("reuters")

	if err.Error() != "unknown news source: reuters" {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("aggregate: %w", err)
	var use *apperr.UnknownSourceError
	if !errors.As(wrapped, &use) {
		t.Fatal("errors.As should find UnknownSourceError")
	}
	if use.Source != "reuters" {
		t.Errorf("expected source reuters, got %q", use.Source)
	}
}

func TestExternalAPIError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var eae *apperr.ExternalAPIError
	if errors.As(wrapped, &eae) {
		t.Fatal("errors.As should NOT find ExternalAPIError in plain error chain")
	}
}
