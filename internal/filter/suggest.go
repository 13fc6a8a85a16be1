package filter

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const SuggestThreshold = 0.8

type scored struct {
	text  string
	score float64
	index int
}

// Suggest ranks the fields of items by similarity to query and returns up to
// limit distinct field values scoring at least SuggestThreshold. It is used
// only to hint after a search comes back empty.
func Suggest[T Searchable](items []T, query string, limit int) []string {
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}
	jw := metrics.NewJaroWinkler()
	jw.CaseSensitive = false

	best := make(map[string]int)
	var ranked []scored
	for _, item := range items {
		for _, field := range item.SearchFields() {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			score := strutil.Similarity(q, field, jw)
			if score < SuggestThreshold {
				continue
			}
			key := strings.ToLower(field)
			if i, ok := best[key]; ok {
				if score > ranked[i].score {
					ranked[i].score = score
				}
				continue
			}
			best[key] = len(ranked)
			ranked = append(ranked, scored{text: field, score: score, index: len(ranked)})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].index < ranked[j].index
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.text
	}
	return out
}
