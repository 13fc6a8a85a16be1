// Package filter narrows entity lists by a free-text query.
//
// Matching is case-insensitive substring containment over each entity's
// searchable fields. Output order always equals input order.
package filter

import (
	"strings"

	"github.com/samber/lo"

	"github.com/five82/f1nalyzer/internal/f1api"
)

// Searchable is implemented by entities that expose search fields.
// Blank fields are skipped.
type Searchable interface {
	SearchFields() []string
}

// Normalize trims and case-folds a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Apply returns the items with a field containing query. An empty or blank
// query returns items unchanged.
func Apply[T Searchable](items []T, query string) []T {
	q := Normalize(query)
	if q == "" {
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return Matches(item, q)
	})
}

// Matches reports whether any non-blank field of item contains the
// normalized query q.
func Matches(item Searchable, q string) bool {
	for _, field := range item.SearchFields() {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Drivers, Circuits and Tracks are typed shorthands used by the panels.
func Drivers(items []f1api.Driver, query string) []f1api.Driver {
	return Apply(items, query)
}

func Circuits(items []f1api.Circuit, query string) []f1api.Circuit {
	return Apply(items, query)
}

func Tracks(items []f1api.Track, query string) []f1api.Track {
	return Apply(items, query)
}
