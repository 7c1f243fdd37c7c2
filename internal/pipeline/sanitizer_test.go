package pipeline

import (
	"testing"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSanitize_TitleStripsAllMarkup(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{Title: "<script>alert(1)</script>Clean Title"})
	assert.Equal(t, "Clean Title", got.Title)

	got = s.Sanitize(domain.Article{Title: "<b>Bold</b> headline"})
	assert.Equal(t, "Bold headline", got.Title)
}

func TestSanitize_ContentKeepsAllowlistedTags(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{Content: "<p>ok</p><script>bad</script>"})
	assert.Equal(t, "<p>ok</p>", got.Content)

	got = s.Sanitize(domain.Article{Content: `<div><em>kept</em><iframe src="evil"></iframe></div>`})
	assert.Equal(t, "<em>kept</em>", got.Content)
}

func TestSanitize_StyleContentRemoved(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{Summary: "<style>p{color:red}</style><p>text</p>"})
	assert.Equal(t, "<p>text</p>", got.Summary)
}

func TestSanitize_EntityDecodeAfterStripping(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{Title: "Q&amp;A session"})
	assert.Equal(t, "Q&A session", got.Title)
}

func TestSanitize_InvalidURLsCleared(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{URL: "not a url", ImageURL: "/relative/path.jpg"})
	assert.Empty(t, got.URL)
	assert.Empty(t, got.ImageURL)
}

func TestSanitize_ValidURLsKept(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{
		URL:      "https://example.com/article?id=1",
		ImageURL: "https://cdn.example.com/img.jpg",
	})
	assert.Equal(t, "https://example.com/article?id=1", got.URL)
	assert.Equal(t, "https://cdn.example.com/img.jpg", got.ImageURL)
}

func TestSanitize_NeverEmitsInvalidURL(t *testing.T) {
	s := NewSanitizer()
	inputs := []string{"", "https://ok.example/x", "htp:/broken", "javascript:alert(1)", "//missing-scheme.example"}

	for _, in := range inputs {
		got := s.Sanitize(domain.Article{URL: in, ImageURL: in})
		if got.URL != "" {
			assert.True(t, isAbsoluteURL(got.URL), "url %q survived sanitization", in)
		}
		if got.ImageURL != "" {
			assert.True(t, isAbsoluteURL(got.ImageURL), "image url %q survived sanitization", in)
		}
	}
}

func TestSanitize_AnchorSurvivesWithAttributes(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize(domain.Article{Content: `<a href="https://x/y">link</a>`})
	assert.Equal(t, `<a href="https://x/y">link</a>`, got.Content)
}
