package source

import (
	"testing"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNewsAPI() *NewsAPI {
	return NewNewsAPI(config.SourceConfig{
		BaseURL: "https://newsapi.org/v2/",
		APIKey:  "test-key",
	})
}

func TestNewsAPI_Configured(t *testing.T) {
	assert.True(t, newTestNewsAPI().Configured())
	assert.False(t, NewNewsAPI(config.SourceConfig{BaseURL: "https://newsapi.org/v2/"}).Configured())
	assert.False(t, NewNewsAPI(config.SourceConfig{APIKey: "k"}).Configured())
}

func TestNewsAPI_Endpoint_QueryWinsOverCategory(t *testing.T) {
	s := newTestNewsAPI()

	assert.Equal(t, "top-headlines", s.Endpoint(domain.Filters{}))
	assert.Equal(t, "top-headlines", s.Endpoint(domain.Filters{Category: "science"}))
	assert.Equal(t, "everything", s.Endpoint(domain.Filters{Query: "golang", Category: "science"}))
}

func TestNewsAPI_BuildParams_Headlines(t *testing.T) {
	s := newTestNewsAPI()

	params := s.BuildParams(domain.Filters{Limit: 10, Page: 2, Category: "science"})

	assert.Equal(t, "test-key", params.Get("apiKey"))
	assert.Equal(t, "10", params.Get("pageSize"))
	assert.Equal(t, "2", params.Get("page"))
	assert.Equal(t, "us", params.Get("country"))
	assert.Equal(t, "science", params.Get("category"))
}

func TestNewsAPI_BuildParams_UnknownCategoryDropped(t *testing.T) {
	s := newTestNewsAPI()

	params := s.BuildParams(domain.Filters{Category: "astrology"})

	assert.Empty(t, params.Get("category"))
}

func TestNewsAPI_BuildParams_SearchDropsBrowseParams(t *testing.T) {
	s := newTestNewsAPI()
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	params := s.BuildParams(domain.Filters{Query: "climate", Category: "science", From: from})

	assert.Equal(t, "climate", params.Get("q"))
	assert.Empty(t, params.Get("country"))
	assert.Empty(t, params.Get("category"))
	assert.Equal(t, "2023-01-01T00:00:00Z", params.Get("from"))
	assert.Equal(t, "20", params.Get("pageSize"))
	assert.Equal(t, "1", params.Get("page"))
}

func TestNewsAPI_ExtractRawList(t *testing.T) {
	s := newTestNewsAPI()

	list := s.ExtractRawList([]byte(`{"status":"ok","articles":[{"title":"a"},{"title":"b"}]}`))
	assert.Len(t, list, 2)

	assert.Empty(t, s.ExtractRawList([]byte(`{"status":"ok"}`)))
	assert.Empty(t, s.ExtractRawList([]byte(`not json`)))
	assert.Empty(t, s.ExtractRawList(nil))
}

func TestNewsAPI_Transform(t *testing.T) {
	s := newTestNewsAPI()

	raw := []byte(`{
		"source": {"id": "bbc-news", "name": "BBC News"},
		"author": "Jane Doe",
		"title": "Quantum chips arrive",
		"description": "Short summary.",
		"url": "https://bbc.com/news/1",
		"urlToImage": "https://bbc.com/img/1.jpg",
		"publishedAt": "2023-05-01T10:30:00Z",
		"content": "Full body."
	}`)

	a, err := s.Transform(raw)
	require.NoError(t, err)

	assert.Equal(t, "Quantum chips arrive", a.Title)
	assert.Equal(t, "Full body.", a.Content)
	assert.Equal(t, "Short summary.", a.Summary)
	assert.Equal(t, "https://bbc.com/news/1", a.URL)
	assert.Equal(t, "https://bbc.com/img/1.jpg", a.ImageURL)
	assert.Equal(t, time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC), a.PublishedAt)
	assert.Equal(t, "Jane Doe", a.Author)
	assert.Equal(t, "newsapi", a.SourceID)
	assert.Equal(t, "BBC News", a.SourceName)
	assert.NotEmpty(t, a.ExternalID)
}

func TestNewsAPI_Transform_ContentFallsBackToDescription(t *testing.T) {
	s := newTestNewsAPI()

	a, err := s.Transform([]byte(`{"title":"t","description":"desc only","url":"https://x/y"}`))
	require.NoError(t, err)

	assert.Equal(t, "desc only", a.Content)
	assert.Equal(t, "NewsAPI.org", a.SourceName)
	assert.True(t, a.PublishedAt.IsZero())
}
