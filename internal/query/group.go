package query

import (
	"sort"

	"taxstud/internal/taxonomy"
)

// UnspecifiedGroup is the sentinel group for items lacking the grouping
// facet.
const UnspecifiedGroup = "_unspecified_"

// GroupByFacet buckets items by their values for the given facet. An item
// with a multi-valued facet fans out into every group named by its
// elements, and an item without the facet lands in the UnspecifiedGroup
// sentinel, so the result is not a strict partition.
func GroupByFacet(items []taxonomy.Item, facetName string) map[string][]taxonomy.Item {
	groups := make(map[string][]taxonomy.Item)

	for i := range items {
		values := items[i].FacetStrings(facetName)
		if len(values) == 0 {
			groups[UnspecifiedGroup] = append(groups[UnspecifiedGroup], items[i])
			continue
		}
		for _, v := range values {
			groups[v] = append(groups[v], items[i])
		}
	}

	return groups
}

// SortedGroupNames returns the group keys in lexical order for
// deterministic display.
func SortedGroupNames(groups map[string][]taxonomy.Item) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
