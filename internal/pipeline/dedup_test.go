package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleSimilarity_SelfMatchIsPerfect(t *testing.T) {
	titles := []string{"Breaking News", "a", "Some Longer Headline With Words"}
	for _, title := range titles {
		sim := TitleSimilarity(title, title)
		assert.Equal(t, 1.0, sim, "similarity(%q, %q)", title, title)
		assert.Greater(t, sim, similarityThreshold, "self-match must never miss")
	}
}

func TestTitleSimilarity_EmptyTitles(t *testing.T) {
	assert.Equal(t, 1.0, TitleSimilarity("", ""))
}

func TestTitleSimilarity_Containment(t *testing.T) {
	sim := TitleSimilarity("Breaking News: Major Event Happens", "Breaking News: Major Event Happens Today")
	assert.Equal(t, 0.9, sim)
	assert.Greater(t, sim, similarityThreshold)
}

func TestTitleSimilarity_Distance(t *testing.T) {
	// Two edits across 35 runes: well above the threshold.
	assert.Greater(t, TitleSimilarity("Breaking News: Major Event Happens", "Breaking News: Major Event Happened"), similarityThreshold)

	// Unrelated titles score low.
	assert.Less(t, TitleSimilarity("Stock markets rally on tech earnings", "Local team wins championship final"), similarityThreshold)
}

func seedStore(t *testing.T) (*memory.Store, *DuplicateDetector, domain.StoredArticle) {
	t.Helper()

	store := memory.NewStore()
	ctx := context.Background()

	src, err := store.GetOrCreateSource(ctx, "newsapi", "NewsAPI.org")
	require.NoError(t, err)
	cat, err := store.GetOrCreateCategory(ctx, "general")
	require.NoError(t, err)

	stored, err := store.CreateArticle(ctx, domain.Article{
		Title:       "Breaking News: Major Event Happens",
		URL:         "https://example.com/breaking",
		ExternalID:  "ext-1",
		PublishedAt: time.Date(2023, 4, 10, 8, 0, 0, 0, time.UTC),
	}, src.ID, cat.ID)
	require.NoError(t, err)

	return store, NewDuplicateDetector(store), stored
}

func TestFindDuplicate_ByURL(t *testing.T) {
	_, d, stored := seedStore(t)

	match, err := d.FindDuplicate(context.Background(), domain.Article{
		Title:       "Completely Different Title",
		URL:         "https://example.com/breaking",
		ExternalID:  "other",
		PublishedAt: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, stored.ID, match.ID)
}

func TestFindDuplicate_ByExternalID(t *testing.T) {
	_, d, stored := seedStore(t)

	match, err := d.FindDuplicate(context.Background(), domain.Article{
		Title:       "Completely Different Title",
		URL:         "https://example.com/other",
		ExternalID:  "ext-1",
		PublishedAt: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, stored.ID, match.ID)
}

func TestFindDuplicate_FuzzySameDayTitle(t *testing.T) {
	_, d, stored := seedStore(t)

	match, err := d.FindDuplicate(context.Background(), domain.Article{
		Title:       "Breaking News: Major Event Happens Today",
		URL:         "https://elsewhere.com/story",
		ExternalID:  "ext-2",
		PublishedAt: time.Date(2023, 4, 10, 19, 30, 0, 0, time.UTC), // same calendar day
	})
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, stored.ID, match.ID)
}

func TestFindDuplicate_DifferentDayNotFuzzyMatched(t *testing.T) {
	_, d, _ := seedStore(t)

	match, err := d.FindDuplicate(context.Background(), domain.Article{
		Title:       "Breaking News: Major Event Happens Today",
		URL:         "https://elsewhere.com/story",
		ExternalID:  "ext-2",
		PublishedAt: time.Date(2023, 4, 11, 1, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Nil(t, match, "fuzzy matching is restricted to the same calendar day")
}

func TestFindDuplicate_NoMatch(t *testing.T) {
	_, d, _ := seedStore(t)

	match, err := d.FindDuplicate(context.Background(), domain.Article{
		Title:       "Entirely Unrelated Headline About Gardening",
		URL:         "https://elsewhere.com/gardening",
		ExternalID:  "ext-3",
		PublishedAt: time.Date(2023, 4, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Nil(t, match)
}
