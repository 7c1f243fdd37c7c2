package cache

import (
	"context"
	"testing"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMemory_PutGet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	articles := []domain.Article{{Title: "A", URL: "https://x/a"}}
	c.Put(ctx, "k", articles, time.Minute)

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, articles, got)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Put(ctx, "k", []domain.Article{{Title: "A"}}, 5*time.Minute)

	c.now = func() time.Time { return now.Add(5*time.Minute + time.Second) }
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok, "entry should expire after its TTL")
}

func TestMemory_LastWriterWins(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.Put(ctx, "k", []domain.Article{{Title: "old"}}, time.Minute)
	c.Put(ctx, "k", []domain.Article{{Title: "new"}}, time.Minute)

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "new", got[0].Title)
}
