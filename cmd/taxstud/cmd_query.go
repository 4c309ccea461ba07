package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taxstud/internal/logging"
	"taxstud/internal/query"
	"taxstud/internal/store"
	"taxstud/internal/taxonomy"
)

var (
	queryGenera  []string
	queryFacets  []string
	querySortBy  string
	queryGroupBy string
)

// queryCmd filters, sorts and groups the items of a data file
var queryCmd = &cobra.Command{
	Use:   "query [file]",
	Short: "Browse items with filters, sorting and grouping",
	Long: `Loads a data file (running the full validation pipeline), then applies
the requested filter, sort and group operations and prints the result.

Examples:
  taxstud query drinks.json
  taxstud query drinks.json --genus Coffee --genus Tea
  taxstud query drinks.json --facet temperature=hot --facet temperature=iced
  taxstud query drinks.json --genus Coffee --facet caffeine_content=high
  taxstud query drinks.json --sort name
  taxstud query drinks.json --group-by temperature`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringArrayVarP(&queryGenera, "genus", "g", nil, "filter by genus/species (repeatable, OR)")
	queryCmd.Flags().StringArrayVarP(&queryFacets, "facet", "f", nil, "filter by facet, format name=value (repeatable)")
	queryCmd.Flags().StringVarP(&querySortBy, "sort", "s", "", "sort by \"name\" or a facet name")
	queryCmd.Flags().StringVarP(&queryGroupBy, "group-by", "G", "", "group results by a facet name")
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger.Debug("query", zap.String("file", path), zap.String("op", opID))

	data, sch, err := store.Load(path)
	if err != nil {
		return err
	}

	for _, facetArg := range queryFacets {
		if !hasEquals(facetArg) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Invalid facet format '%s'. Expected 'name=value'\n", facetArg)
		}
	}

	filters := taxonomy.Filters{
		Genera: queryGenera,
		Facets: query.ParseFacetFilters(queryFacets),
	}

	sortBy := querySortBy
	if sortBy == "" {
		sortBy = cfg.Query.DefaultSort
	}

	rl := logging.WithRequestID(logging.CategoryQuery, opID)
	rl.Info("query %s: %d item(s), %d genus filter(s), %d facet filter(s)",
		path, len(data.Items), len(filters.Genera), len(filters.Facets))

	items := query.Apply(data.Items, filters)
	if sortBy != "" {
		query.SortItems(items, sortBy)
	}

	out := cmd.OutOrStdout()
	if filters.Empty() && sortBy == "" && queryGroupBy == "" {
		fmt.Fprintf(out, "# %s\n\n", sch.Title)
		fmt.Fprintf(out, "**Items:** %d\n\n", len(items))
		renderItems(out, items)
		return nil
	}

	fmt.Fprintf(out, "# Filtered Results\n\n")
	renderActiveFilters(out, filters)
	if sortBy != "" {
		fmt.Fprintf(out, "**Sorted by:** %s\n\n", sortBy)
	}
	if queryGroupBy != "" {
		fmt.Fprintf(out, "**Grouped by:** %s\n\n", queryGroupBy)
	}

	fmt.Fprintf(out, "**Matching Items:** %d\n\n", len(items))
	if len(items) == 0 {
		fmt.Fprintf(out, "_No items match the specified filters._\n")
		return nil
	}

	if queryGroupBy != "" {
		groups := query.GroupByFacet(items, queryGroupBy)
		for _, name := range query.SortedGroupNames(groups) {
			fmt.Fprintf(out, "## %s (%d)\n\n", name, len(groups[name]))
			renderItems(out, groups[name])
		}
		return nil
	}

	renderItems(out, items)
	return nil
}

func hasEquals(s string) bool {
	for _, r := range s {
		if r == '=' {
			return true
		}
	}
	return false
}
