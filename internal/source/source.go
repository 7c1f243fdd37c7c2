// Package source translates provider wire formats into the common
// article schema. The provider set is small and known at build time, so
// adapters form a closed registry rather than an open plugin system.
package source

import (
	"encoding/json"
	"net/url"
	"slices"

	"github.com/emmanuelr20/innos-news-aggregagator/internal/domain"
)

// Adapter is implemented once per upstream provider.
type Adapter interface {
	// Name is the stable source identifier persisted with every
	// article, e.g. "newsapi".
	Name() string
	DisplayName() string

	// Configured reports whether the adapter has a base URL and API
	// key. Unconfigured adapters are skippable, never fatal.
	Configured() bool

	BaseURL() string

	// Endpoint selects the provider endpoint variant for the given
	// filters. Free-text search always wins over category browsing on
	// providers that separate the two.
	Endpoint(f domain.Filters) string

	// BuildParams maps the generic filters onto provider query
	// parameters. Unknown categories are dropped from the request
	// rather than causing an error.
	BuildParams(f domain.Filters) url.Values

	// ExtractRawList locates the provider's article array inside its
	// response envelope. An absent or malformed envelope yields an
	// empty list, never an error.
	ExtractRawList(body []byte) []json.RawMessage

	// Transform maps one provider record into the common schema.
	Transform(raw json.RawMessage) (domain.Article, error)

	// Categories is the provider's canonical category vocabulary.
	Categories() []string
}

// Registry is the fixed, ordered set of adapters for a deployment.
type Registry struct {
	order    []string
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if _, exists := r.adapters[a.Name()]; exists {
			continue
		}
		r.order = append(r.order, a.Name())
		r.adapters[a.Name()] = a
	}
	return r
}

func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// All returns the adapters in registration order.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}

func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

func supportsCategory(vocabulary []string, category string) bool {
	return category != "" && slices.Contains(vocabulary, category)
}
