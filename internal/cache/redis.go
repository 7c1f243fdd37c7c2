package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "news:fetch:"

// Redis caches fetched article lists as JSON values with a per-key TTL.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]domain.Article, bool) {
	raw, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Debug("redis cache read failed, treating as miss", "key", key, "error", err)
		}
		return nil, false
	}

	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		slog.Warn("corrupt cache entry, treating as miss", "key", key, "error", err)
		return nil, false
	}
	return articles, true
}

func (r *Redis) Put(ctx context.Context, key string, articles []domain.Article, ttl time.Duration) {
	raw, err := json.Marshal(articles)
	if err != nil {
		slog.Warn("failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		slog.Debug("redis cache write failed", "key", key, "error", err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
