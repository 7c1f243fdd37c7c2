package source

import (
	"strings"
	"testing"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuardian() *Guardian {
	return NewGuardian(config.SourceConfig{
		BaseURL: "https://content.guardianapis.com/",
		APIKey:  "test-key",
	})
}

func TestGuardian_BuildParams(t *testing.T) {
	s := newTestGuardian()
	from := time.Date(2023, 3, 15, 8, 0, 0, 0, time.UTC)

	params := s.BuildParams(domain.Filters{Limit: 10, Category: "technology", Query: "ai", From: from})

	assert.Equal(t, "test-key", params.Get("api-key"))
	assert.Equal(t, "10", params.Get("page-size"))
	assert.Equal(t, "technology", params.Get("section"))
	assert.Equal(t, "ai", params.Get("q"))
	assert.Equal(t, "2023-03-15", params.Get("from-date"))
	assert.Equal(t, "newest", params.Get("order-by"))
	assert.Contains(t, params.Get("show-fields"), "bodyText")
}

func TestGuardian_BuildParams_PageSizeCap(t *testing.T) {
	s := newTestGuardian()

	params := s.BuildParams(domain.Filters{Limit: 200})

	assert.Equal(t, "50", params.Get("page-size"))
}

func TestGuardian_BuildParams_UnknownCategoryDropped(t *testing.T) {
	s := newTestGuardian()

	params := s.BuildParams(domain.Filters{Category: "sports"}) // guardian uses "sport"

	assert.Empty(t, params.Get("section"))
}

func TestGuardian_ExtractRawList(t *testing.T) {
	s := newTestGuardian()

	list := s.ExtractRawList([]byte(`{"response":{"status":"ok","results":[{"id":"a"}]}}`))
	assert.Len(t, list, 1)

	assert.Empty(t, s.ExtractRawList([]byte(`{"response":{}}`)))
	assert.Empty(t, s.ExtractRawList([]byte(`<html>error</html>`)))
}

func TestGuardian_Transform(t *testing.T) {
	s := newTestGuardian()

	raw := []byte(`{
		"id": "technology/2023/mar/15/ai-article",
		"sectionName": "Technology",
		"webTitle": "Fallback title",
		"webUrl": "https://www.theguardian.com/technology/2023/mar/15/ai-article",
		"webPublicationDate": "2023-03-15T09:00:00Z",
		"fields": {
			"headline": "AI article headline",
			"byline": "Byline Writer",
			"thumbnail": "https://media.guim.co.uk/thumb.jpg",
			"bodyText": "Body text here."
		},
		"tags": [
			{"type": "keyword", "webTitle": "AI"},
			{"type": "contributor", "webTitle": "Alex Hern"}
		]
	}`)

	a, err := s.Transform(raw)
	require.NoError(t, err)

	assert.Equal(t, "AI article headline", a.Title)
	assert.Equal(t, "Alex Hern", a.Author, "contributor tag should win over byline")
	assert.Equal(t, "technology/2023/mar/15/ai-article", a.ExternalID)
	assert.Equal(t, "Technology", a.Category)
	assert.Equal(t, "guardian", a.SourceID)
	assert.Equal(t, "The Guardian", a.SourceName)
	assert.Equal(t, "Body text here.", a.Content)
	assert.Equal(t, "Body text here.", a.Summary)
}

func TestGuardian_Transform_Fallbacks(t *testing.T) {
	s := newTestGuardian()

	a, err := s.Transform([]byte(`{"webTitle":"Only web title","webUrl":"https://www.theguardian.com/x"}`))
	require.NoError(t, err)

	assert.Equal(t, "Only web title", a.Title)
	assert.NotEmpty(t, a.ExternalID, "missing provider id should hash the url")
}

func TestSummarize_CutsAtWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 60) // 300 chars

	got := summarize(long)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), guardianSummaryLimit+3)
	assert.NotContains(t, got, "  ")
}

func TestSummarize_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short body", summarize("short  body"))
	assert.Equal(t, "", summarize(""))
}
