package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is the common currency of the aggregation pipeline: every
// provider-native record is transformed into this shape before it flows
// through normalization, sanitization, categorization and dedup. It is
// passed by value between stages; no stage mutates a shared reference.
type Article struct {
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author,omitempty"`
	SourceID    string    `json:"sourceId"`
	SourceName  string    `json:"sourceName,omitempty"`
	ExternalID  string    `json:"externalId"`
	Category    string    `json:"category,omitempty"`
}

// Source is a persisted dimension entity keyed by its natural name
// (the adapter identifier, e.g. "newsapi"). Lazily created on first
// encounter, never duplicated.
type Source struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName,omitempty"`
	Active      bool      `json:"active"`
}

// Category is a persisted dimension entity keyed by its slug.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// StoredArticle is the persisted record. URL and ExternalID are
// independently enforced-unique at the storage layer, the second line
// of defense against duplicates beyond the in-pipeline detector.
// Never mutated by this subsystem after creation.
type StoredArticle struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author,omitempty"`
	ExternalID  string    `json:"externalId"`
	SourceID    uuid.UUID `json:"sourceId"`
	CategoryID  uuid.UUID `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
}
