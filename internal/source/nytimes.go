package source

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/config"
	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
	"github.com/emmanuelr20/innos-news-aggregagator/pkg/stringsutil"
)

var nytBylinePrefix = regexp.MustCompile(`(?i)^by\s+`)

// NYTimes adapts two NYT APIs behind one adapter: free-text queries go
// to the Article Search API (which wins when both a query and a
// category are supplied), otherwise Top Stories serves the requested
// section, falling back to the home feed.
type NYTimes struct {
	baseURL string
	apiKey  string
}

func NewNYTimes(cfg config.SourceConfig) *NYTimes {
	return &NYTimes{baseURL: cfg.BaseURL, apiKey: cfg.APIKey}
}

func (s *NYTimes) Name() string        { return "nytimes" }
func (s *NYTimes) DisplayName() string { return "The New York Times" }
func (s *NYTimes) BaseURL() string     { return s.baseURL }

func (s *NYTimes) Configured() bool {
	return s.baseURL != "" && s.apiKey != ""
}

func (s *NYTimes) Categories() []string {
	return []string{
		"arts", "automobiles", "books", "business", "fashion", "food",
		"health", "home", "insider", "magazine", "movies", "nyregion",
		"obituaries", "opinion", "politics", "realestate", "science",
		"sports", "sundayreview", "technology", "theater", "travel",
		"upshot", "us", "world",
	}
}

func (s *NYTimes) Endpoint(f domain.Filters) string {
	if f.Query != "" {
		return "search/v2/articlesearch.json"
	}
	if supportsCategory(s.Categories(), f.Category) {
		return "topstories/v2/" + f.Category + ".json"
	}
	return "topstories/v2/home.json"
}

func (s *NYTimes) BuildParams(f domain.Filters) url.Values {
	params := url.Values{}
	params.Set("api-key", s.apiKey)

	if f.Query != "" {
		params.Set("q", f.Query)
		if !f.From.IsZero() {
			params.Set("begin_date", f.From.UTC().Format("20060102"))
		}
		if !f.To.IsZero() {
			params.Set("end_date", f.To.UTC().Format("20060102"))
		}
		// Article Search pages are 0-based.
		page := 0
		if f.Page > 1 {
			page = f.Page - 1
		}
		params.Set("page", strconv.Itoa(page))
	}

	return params
}

type nytEnvelope struct {
	Response struct {
		Docs []json.RawMessage `json:"docs"`
	} `json:"response"`
	Results []json.RawMessage `json:"results"`
}

func (s *NYTimes) ExtractRawList(body []byte) []json.RawMessage {
	var envelope nytEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if len(envelope.Response.Docs) > 0 {
		return envelope.Response.Docs
	}
	return envelope.Results
}

type nytSearchArticle struct {
	WebURL        string `json:"web_url"`
	LeadParagraph string `json:"lead_paragraph"`
	Abstract      string `json:"abstract"`
	Snippet       string `json:"snippet"`
	PubDate       string `json:"pub_date"`
	SectionName   string `json:"section_name"`
	ID            string `json:"_id"`
	Headline      struct {
		Main string `json:"main"`
	} `json:"headline"`
	Byline struct {
		Original string `json:"original"`
	} `json:"byline"`
	Multimedia []nytMedia `json:"multimedia"`
}

type nytTopStoryArticle struct {
	Title         string     `json:"title"`
	Abstract      string     `json:"abstract"`
	URL           string     `json:"url"`
	ShortURL      string     `json:"short_url"`
	Byline        string     `json:"byline"`
	Section       string     `json:"section"`
	PublishedDate string     `json:"published_date"`
	Multimedia    []nytMedia `json:"multimedia"`
}

type nytMedia struct {
	URL    string `json:"url"`
	Type   string `json:"type"`
	Format string `json:"format"`
}

func (s *NYTimes) Transform(raw json.RawMessage) (domain.Article, error) {
	// The two endpoints have distinct shapes; web_url marks a search doc.
	var probe struct {
		WebURL string `json:"web_url"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return domain.Article{}, err
	}
	if probe.WebURL != "" {
		return s.transformSearch(raw)
	}
	return s.transformTopStory(raw)
}

func (s *NYTimes) transformSearch(raw json.RawMessage) (domain.Article, error) {
	var a nytSearchArticle
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Article{}, err
	}

	// First typed image candidate wins.
	var imageURL string
	for _, media := range a.Multimedia {
		if media.Type == "image" && media.URL != "" {
			imageURL = media.URL
			break
		}
	}

	summary := a.Abstract
	if summary == "" {
		summary = a.Snippet
	}

	var publishedAt time.Time
	if a.PubDate != "" {
		publishedAt, _ = time.Parse(time.RFC3339, a.PubDate)
	}

	externalID := a.ID
	if externalID == "" {
		externalID = stringsutil.SHA1Hex(a.WebURL)
	}

	return domain.Article{
		Title:       a.Headline.Main,
		Content:     a.LeadParagraph,
		Summary:     summary,
		URL:         a.WebURL,
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
		Author:      firstBylineAuthor(a.Byline.Original),
		SourceID:    s.Name(),
		SourceName:  s.DisplayName(),
		ExternalID:  externalID,
		Category:    a.SectionName,
	}, nil
}

func (s *NYTimes) transformTopStory(raw json.RawMessage) (domain.Article, error) {
	var a nytTopStoryArticle
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Article{}, err
	}

	// Largest known image format first, else none.
	var imageURL string
	for _, media := range a.Multimedia {
		if media.Format == "superJumbo" || media.Format == "jumbo" || media.Format == "Super Jumbo" {
			imageURL = media.URL
			break
		}
	}

	articleURL := a.URL
	if articleURL == "" {
		articleURL = a.ShortURL
	}

	var publishedAt time.Time
	if a.PublishedDate != "" {
		publishedAt, _ = time.Parse(time.RFC3339, a.PublishedDate)
	}

	return domain.Article{
		Title:       a.Title,
		Content:     a.Abstract,
		Summary:     a.Abstract,
		URL:         articleURL,
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
		Author:      firstBylineAuthor(a.Byline),
		SourceID:    s.Name(),
		SourceName:  s.DisplayName(),
		ExternalID:  stringsutil.SHA1Hex(articleURL),
		Category:    a.Section,
	}, nil
}

// firstBylineAuthor strips a leading "By " and keeps only the first
// author of a multi-author byline.
func firstBylineAuthor(byline string) string {
	if byline == "" {
		return ""
	}
	author := nytBylinePrefix.ReplaceAllString(byline, "")
	author, _, _ = strings.Cut(author, " and ")
	return strings.TrimSpace(author)
}
