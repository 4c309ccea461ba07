package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"taxstud/internal/taxonomy"
)

// renderActiveFilters prints the filter summary block the way the original
// browser did: one bullet per clause, OR-joined values.
func renderActiveFilters(out io.Writer, filters taxonomy.Filters) {
	if filters.Empty() {
		return
	}
	fmt.Fprintf(out, "## Active Filters\n\n")
	if len(filters.Genera) > 0 {
		fmt.Fprintf(out, "- **Genus:** %s\n", strings.Join(filters.Genera, " OR "))
	}
	names := make([]string, 0, len(filters.Facets))
	for name := range filters.Facets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "- **%s:** %s\n", name, strings.Join(filters.Facets[name], " OR "))
	}
	fmt.Fprintln(out)
}

// renderItems prints one block per item: heading, classical path, facets in
// sorted order, and a count of carried-through opaque fields.
func renderItems(out io.Writer, items []taxonomy.Item) {
	for i := range items {
		item := &items[i]
		fmt.Fprintf(out, "### %s\n\n", item.Name)
		fmt.Fprintf(out, "- **Path:** %s\n", strings.Join(item.ClassicalPath, " → "))

		names := make([]string, 0, len(item.Facets))
		for name := range item.Facets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "- **%s:** %s\n", name, item.Facets[name].Join(", "))
		}

		if n := item.Extra.Len(); n > 0 {
			fmt.Fprintf(out, "- _%d additional field(s)_\n", n)
		}
		fmt.Fprintln(out)
	}
}
