package source

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
)

const newsAPIDefaultPageSize = 20

// NewsAPI adapts the NewsAPI.org v2 API. Top headlines are browsed per
// country/category; free-text search switches to the everything
// endpoint, which accepts neither.
type NewsAPI struct {
	baseURL string
	apiKey  string
}

func NewNewsAPI(cfg config.SourceConfig) *NewsAPI {
	return &NewsAPI{baseURL: cfg.BaseURL, apiKey: cfg.APIKey}
}

func (s *NewsAPI) Name() string        { return "newsapi" }
func (s *NewsAPI) DisplayName() string { return "NewsAPI.org" }
func (s *NewsAPI) BaseURL() string     { return s.baseURL }

func (s *NewsAPI) Configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

func (s *NewsAPI) Categories() []string {
	return []string{
		"business",
		"entertainment",
		"general",
		"health",
		"science",
		"sports",
		"technology",
	}
}

func (s *NewsAPI) Endpoint(f domain.Filters) string {
	if f.Query != "" {
		return "everything"
	}
	return "top-headlines"
}

func (s *NewsAPI) BuildParams(f domain.Filters) url.Values {
	params := url.Values{}
	params.Set("apiKey", s.apiKey)

	pageSize := f.Limit
	if pageSize <= 0 {
		pageSize = newsAPIDefaultPageSize
	}
	params.Set("pageSize", strconv.Itoa(pageSize))

	page := f.Page
	if page <= 0 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	if f.Query != "" {
		// The everything endpoint rejects country and category.
		params.Set("q", f.Query)
	} else {
		params.Set("country", "us")
		if supportsCategory(s.Categories(), f.Category) {
			params.Set("category", f.Category)
		}
	}

	if !f.From.IsZero() {
		params.Set("from", f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		params.Set("to", f.To.UTC().Format(time.RFC3339))
	}

	return params
}

type newsAPIEnvelope struct {
	Articles []json.RawMessage `json:"articles"`
}

func (s *NewsAPI) ExtractRawList(body []byte) []json.RawMessage {
	var envelope newsAPIEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Articles
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

func (s *NewsAPI) Transform(raw json.RawMessage) (domain.Article, error) {
	var a newsAPIArticle
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Article{}, err
	}

	content := a.Content
	if content == "" {
		content = a.Description
	}

	sourceName := a.Source.Name
	if sourceName == "" {
		sourceName = s.DisplayName()
	}

	var publishedAt time.Time
	if a.PublishedAt != "" {
		publishedAt, _ = time.Parse(time.RFC3339, a.PublishedAt)
	}

	return domain.Article{
		Title:       a.Title,
		Content:     content,
		Summary:     a.Description,
		URL:         a.URL,
		ImageURL:    a.URLToImage,
		PublishedAt: publishedAt,
		Author:      a.Author,
		SourceID:    s.Name(),
		SourceName:  sourceName,
		ExternalID:  stringsutil.SHA1Hex(a.URL),
	}, nil
}
