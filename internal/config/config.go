package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/pkg/config/env"
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultFetchRetries = 3
	defaultFetchBackoff = time.Second
	defaultCacheTTL     = 5 * time.Minute

	defaultRunTimeout  = 300 * time.Second
	defaultRunAttempts = 3
	defaultRunBackoff  = 60 * time.Second
)

// SourceConfig carries one provider's credentials. An empty APIKey or
// BaseURL leaves the adapter unconfigured, which the orchestrator skips
// rather than treating as fatal.
type SourceConfig struct {
	BaseURL string
	APIKey  string
}

// FetchConfig tunes the resilient fetcher. Defaults mirror the
// observed contract: 3 attempts, 1s backoff unit, 5 minute cache TTL.
type FetchConfig struct {
	Timeout  time.Duration
	Retries  int
	Backoff  time.Duration
	CacheTTL time.Duration
}

// RunConfig bounds a whole aggregation run: a hard wall-clock budget
// and a fixed-delay retry policy owned by the external trigger.
type RunConfig struct {
	Timeout  time.Duration
	Attempts int
	Backoff  time.Duration
}

type Config struct {
	NewsAPI  SourceConfig
	Guardian SourceConfig
	NYTimes  SourceConfig

	Fetch FetchConfig
	Run   RunConfig

	DatabaseURL string
	RedisAddr   string
}

func Load() (*Config, error) {
	_ = env.LoadDotEnv(os.Getenv("APP_ENV"), ".env")

	fetch := FetchConfig{
		Timeout:  defaultFetchTimeout,
		Retries:  defaultFetchRetries,
		Backoff:  defaultFetchBackoff,
		CacheTTL: defaultCacheTTL,
	}
	var err error
	if fetch.Retries, err = intEnv("FETCH_RETRIES", defaultFetchRetries); err != nil {
		return nil, err
	}
	if fetch.Backoff, err = durationEnv("FETCH_BACKOFF", defaultFetchBackoff); err != nil {
		return nil, err
	}
	if fetch.Timeout, err = durationEnv("FETCH_TIMEOUT", defaultFetchTimeout); err != nil {
		return nil, err
	}
	if fetch.CacheTTL, err = durationEnv("CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}

	run := RunConfig{Timeout: defaultRunTimeout, Attempts: defaultRunAttempts, Backoff: defaultRunBackoff}
	if run.Timeout, err = durationEnv("RUN_TIMEOUT", defaultRunTimeout); err != nil {
		return nil, err
	}
	if run.Attempts, err = intEnv("RUN_ATTEMPTS", defaultRunAttempts); err != nil {
		return nil, err
	}
	if run.Backoff, err = durationEnv("RUN_BACKOFF", defaultRunBackoff); err != nil {
		return nil, err
	}

	return &Config{
		NewsAPI: SourceConfig{
			BaseURL: envOr("NEWSAPI_BASE_URL", "https://newsapi.org/v2/"),
			APIKey:  os.Getenv("NEWSAPI_KEY"),
		},
		Guardian: SourceConfig{
			BaseURL: envOr("GUARDIAN_BASE_URL", "https://content.guardianapis.com/"),
			APIKey:  os.Getenv("GUARDIAN_KEY"),
		},
		NYTimes: SourceConfig{
			BaseURL: envOr("NYTIMES_BASE_URL", "https://api.nytimes.com/svc/"),
			APIKey:  os.Getenv("NYTIMES_KEY"),
		},
		Fetch:       fetch,
		Run:         run,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
