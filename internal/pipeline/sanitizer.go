package pipeline

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"golang.org/x/net/html"
)

// allowedRichTextTags is the allowlist for content and summary: basic
// formatting only. Titles get no allowlist at all.
var allowedRichTextTags = map[string]bool{
	"p": true, "br": true,
	"strong": true, "b": true, "em": true, "i": true, "u": true,
	"a":  true,
	"ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

type Sanitizer struct{}

func NewSanitizer() Sanitizer {
	return Sanitizer{}
}

// Sanitize strips unsafe markup from the rich-text fields and clears
// any URL field that does not parse as an absolute URL. It never
// fails; unsafe values degrade to empty.
func (Sanitizer) Sanitize(a domain.Article) domain.Article {
	if a.Title != "" {
		a.Title = stripAllMarkup(a.Title)
	}
	if a.Content != "" {
		a.Content = sanitizeRichText(a.Content)
	}
	if a.Summary != "" {
		a.Summary = sanitizeRichText(a.Summary)
	}

	if a.URL != "" && !isAbsoluteURL(a.URL) {
		slog.Warn("invalid article url cleared", "url", a.URL)
		a.URL = ""
	}
	if a.ImageURL != "" && !isAbsoluteURL(a.ImageURL) {
		slog.Warn("invalid image url cleared", "url", a.ImageURL)
		a.ImageURL = ""
	}

	return a
}

// stripAllMarkup removes script/style blocks including their content,
// then every remaining tag, and entity-decodes the text.
func stripAllMarkup(s string) string {
	return stripMarkup(s, nil)
}

// sanitizeRichText keeps only basic formatting tags. Script and style
// content is dropped before the allowlist pass so partial dangerous
// fragments cannot survive.
func sanitizeRichText(s string) string {
	return stripMarkup(s, allowedRichTextTags)
}

func stripMarkup(s string, allowed map[string]bool) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	rawTextDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if rawTextDepth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				rawTextDepth++
				continue
			}
			if rawTextDepth == 0 && allowed[tag] {
				b.Write(z.Raw())
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if rawTextDepth > 0 {
					rawTextDepth--
				}
				continue
			}
			if rawTextDepth == 0 && allowed[tag] {
				b.Write(z.Raw())
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if rawTextDepth == 0 && allowed[string(name)] {
				b.Write(z.Raw())
			}
		}
	}
}

// isAbsoluteURL accepts only syntactically valid absolute URLs with a
// host; anything else must never reach storage.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}
