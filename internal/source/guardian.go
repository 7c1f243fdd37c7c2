package source

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
)

const (
	guardianDefaultPageSize = 20
	guardianMaxPageSize     = 50
	guardianSummaryLimit    = 200
)

// Guardian adapts the Guardian Content API. One endpoint serves both
// category browsing (section parameter) and free-text search.
type Guardian struct {
	baseURL string
	apiKey  string
}

func NewGuardian(cfg config.SourceConfig) *Guardian {
	return &Guardian{baseURL: cfg.BaseURL, apiKey: cfg.APIKey}
}

func (s *Guardian) Name() string        { return "guardian" }
func (s *Guardian) DisplayName() string { return "The Guardian" }
func (s *Guardian) BaseURL() string     { return s.baseURL }

func (s *Guardian) Configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

func (s *Guardian) Categories() []string {
	return []string{
		"world",
		"politics",
		"business",
		"technology",
		"environment",
		"science",
		"sport",
		"culture",
		"lifestyle",
		"opinion",
		"education",
		"media",
		"society",
	}
}

func (s *Guardian) Endpoint(domain.Filters) string {
	return "top-stories"
}

func (s *Guardian) BuildParams(f domain.Filters) url.Values {
	params := url.Values{}
	params.Set("api-key", s.apiKey)

	pageSize := f.Limit
	if pageSize <= 0 {
		pageSize = guardianDefaultPageSize
	}
	if pageSize > guardianMaxPageSize {
		pageSize = guardianMaxPageSize
	}
	params.Set("page-size", strconv.Itoa(pageSize))

	page := f.Page
	if page <= 0 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	params.Set("show-fields", "headline,byline,thumbnail,bodyText,publication,short-url")
	params.Set("show-tags", "contributor")
	params.Set("order-by", "newest")

	if supportsCategory(s.Categories(), f.Category) {
		params.Set("section", f.Category)
	}
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if !f.From.IsZero() {
		params.Set("from-date", f.From.UTC().Format(time.DateOnly))
	}
	if !f.To.IsZero() {
		params.Set("to-date", f.To.UTC().Format(time.DateOnly))
	}

	return params
}

type guardianEnvelope struct {
	Response struct {
		Results []json.RawMessage `json:"results"`
	} `json:"response"`
}

func (s *Guardian) ExtractRawList(body []byte) []json.RawMessage {
	var envelope guardianEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Response.Results
}

type guardianArticle struct {
	ID                 string `json:"id"`
	SectionName        string `json:"sectionName"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		Headline  string `json:"headline"`
		Byline    string `json:"byline"`
		Thumbnail string `json:"thumbnail"`
		BodyText  string `json:"bodyText"`
	} `json:"fields"`
	Tags []struct {
		Type     string `json:"type"`
		WebTitle string `json:"webTitle"`
	} `json:"tags"`
}

func (s *Guardian) Transform(raw json.RawMessage) (domain.Article, error) {
	var a guardianArticle
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Article{}, err
	}

	title := a.Fields.Headline
	if title == "" {
		title = a.WebTitle
	}

	// Contributor tag is the authoritative author; byline is a fallback.
	author := a.Fields.Byline
	for _, tag := range a.Tags {
		if tag.Type == "contributor" {
			author = tag.WebTitle
			break
		}
	}

	var publishedAt time.Time
	if a.WebPublicationDate != "" {
		publishedAt, _ = time.Parse(time.RFC3339, a.WebPublicationDate)
	}

	externalID := a.ID
	if externalID == "" {
		externalID = stringsutil.SHA1Hex(a.WebURL)
	}

	return domain.Article{
		Title:       title,
		Content:     a.Fields.BodyText,
		Summary:     summarize(a.Fields.BodyText),
		URL:         a.WebURL,
		ImageURL:    a.Fields.Thumbnail,
		PublishedAt: publishedAt,
		Author:      author,
		SourceID:    s.Name(),
		SourceName:  s.DisplayName(),
		ExternalID:  externalID,
		Category:    a.SectionName,
	}, nil
}

// summarize takes the first ~200 characters of the body text, cut back
// to a word boundary with an ellipsis.
func summarize(bodyText string) string {
	text := strings.Join(strings.Fields(bodyText), " ")
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= guardianSummaryLimit {
		return text
	}

	cut := string(runes[:guardianSummaryLimit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "..."
}
