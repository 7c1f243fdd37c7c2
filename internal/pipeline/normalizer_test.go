package pipeline

import (
	"testing"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_TrimsAndStripsAuthorPrefix(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize(domain.Article{
		Title:       "  Test Article  ",
		URL:         "https://x/y",
		PublishedAt: time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
		Author:      "By Test Author",
	})

	assert.Equal(t, "Test Article", got.Title)
	assert.Equal(t, "Test Author", got.Author)
	assert.NotEmpty(t, got.ExternalID)
}

func TestNormalize_AuthorPrefixVariants(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		in   string
		want string
	}{
		{"By Jane Doe", "Jane Doe"},
		{"by jane doe", "jane doe"},
		{"BY JANE DOE", "JANE DOE"},
		{"Author: Jane Doe", "Jane Doe"},
		{"author:Jane Doe", "Jane Doe"},
		{"  Jane Doe  ", "Jane Doe"},
		{"", ""},
	}
	for _, tt := range tests {
		got := n.Normalize(domain.Article{Author: tt.in})
		assert.Equal(t, tt.want, got.Author, "author %q", tt.in)
	}
}

func TestNormalize_DefaultsPublishedAt(t *testing.T) {
	fixed := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	n := NewNormalizer(WithClock(func() time.Time { return fixed }))

	got := n.Normalize(domain.Article{Title: "t", URL: "https://x/y"})

	assert.Equal(t, fixed, got.PublishedAt)
}

func TestNormalize_KeepsProviderPublishedAt(t *testing.T) {
	n := NewNormalizer()
	published := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	got := n.Normalize(domain.Article{Title: "t", PublishedAt: published})

	assert.Equal(t, published, got.PublishedAt)
}

func TestNormalize_ExternalIDStableAcrossFetches(t *testing.T) {
	n := NewNormalizer()
	in := domain.Article{Title: "Same Title", URL: "https://x/y"}

	first := n.Normalize(in)
	second := n.Normalize(in)

	assert.Equal(t, first.ExternalID, second.ExternalID)
	assert.NotEmpty(t, first.ExternalID)
}

func TestNormalize_KeepsProviderExternalID(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize(domain.Article{Title: "t", ExternalID: "provider-id-1"})

	assert.Equal(t, "provider-id-1", got.ExternalID)
}
