// Package query implements the three composable, read-only browse
// operations over item collections: boolean filtering, locale-aware
// sorting, and fan-out grouping. None of these operations can fail; an
// item missing a facet degrades to a non-match, an empty sort key, or the
// sentinel group, so browsing tolerates items that predate a schema change.
package query

import (
	"strings"

	"taxstud/internal/taxonomy"
)

// Matches reports whether an item satisfies the filters. The genus clause
// matches when any requested genus is a literal element of the item's
// classical path (OR). Each facet clause requires the item to carry that
// facet (a missing facet is a non-match, not a don't-care) and matches
// when any requested value equals any of the item's normalized values (OR).
// Distinct facet names AND together, as does the genus clause against the
// facet clauses. No clauses at all is vacuously true.
func Matches(item *taxonomy.Item, filters taxonomy.Filters) bool {
	if len(filters.Genera) > 0 {
		matched := false
		for _, genus := range filters.Genera {
			for _, step := range item.ClassicalPath {
				if step == genus {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	for facetName, required := range filters.Facets {
		itemValues := item.FacetStrings(facetName)
		if len(itemValues) == 0 {
			return false
		}

		matched := false
		for _, rv := range required {
			for _, iv := range itemValues {
				if rv == iv {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the items that match the filters, preserving their original
// relative order. The source slice is never mutated.
func Apply(items []taxonomy.Item, filters taxonomy.Filters) []taxonomy.Item {
	out := make([]taxonomy.Item, 0, len(items))
	for i := range items {
		if Matches(&items[i], filters) {
			out = append(out, items[i])
		}
	}
	return out
}

// ParseFacetFilters turns "name=value" argument strings into the facet
// filter map, collecting repeated names into OR-sets. Strings without an
// '=' are ignored.
func ParseFacetFilters(args []string) map[string][]string {
	facets := make(map[string][]string)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		facets[key] = append(facets[key], strings.TrimSpace(value))
	}
	return facets
}
