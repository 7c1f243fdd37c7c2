package cache

import (
	"context"
	"sync"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
)

type memEntry struct {
	articles  []domain.Article
	expiresAt time.Time
}

// Memory is a TTL map cache for tests and single-process runs.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]domain.Article, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.articles, true
}

func (m *Memory) Put(_ context.Context, key string, articles []domain.Article, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{articles: articles, expiresAt: m.now().Add(ttl)}
}
