package domain

import (
	"fmt"
	"strings"
	"time"
)

// Filters are the generic fetch parameters every source adapter maps
// onto its own provider query vocabulary.
type Filters struct {
	Limit    int       `json:"limit,omitempty"`
	Page     int       `json:"page,omitempty"`
	Category string    `json:"category,omitempty"`
	Query    string    `json:"q,omitempty"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
}

// CacheKey renders the filters into a stable canonical form suitable
// for keying the fetch cache. Zero-valued fields still appear so that
// two equal filter sets always produce the same key.
func (f Filters) CacheKey() string {
	var b strings.Builder
	fmt.Fprintf(&b, "limit=%d&page=%d", f.Limit, f.Page)
	fmt.Fprintf(&b, "&category=%s&q=%s", f.Category, f.Query)
	if !f.From.IsZero() {
		fmt.Fprintf(&b, "&from=%s", f.From.UTC().Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		fmt.Fprintf(&b, "&to=%s", f.To.UTC().Format(time.RFC3339))
	}
	return b.String()
}
