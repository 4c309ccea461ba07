package query

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"taxstud/internal/taxonomy"
)

// Leading article tokens ignored for sorting, library-science style.
// English plus the common Romance/Germanic articles; longer alternatives
// come before their prefixes so "les" wins over "le" and "an" over "a".
var articlePattern = regexp.MustCompile(
	`^(?i:the|an|a|der|die|das|les|le|la|el|los|las|il|lo|i|gli|une|un|een)\s+`)

var foldCaser = cases.Fold()

// Normalize produces the comparison key for library-science ordering:
// strip exactly one leading article token, decompose to NFD so diacritics
// do not perturb placement, fold case, and collapse whitespace runs.
func Normalize(s string) string {
	s = StripLeadingArticle(s)
	s = norm.NFD.String(s)
	s = foldCaser.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// StripLeadingArticle removes one leading article token if present at the
// very start of the string, case-insensitively.
func StripLeadingArticle(s string) string {
	return articlePattern.ReplaceAllString(s, "")
}

// SortItems reorders items in place. field is either "name" or a facet
// name. Name sorting keys on the normalized name with the raw name as tie
// breaker for determinism; facet sorting keys on the normalized joined
// facet value (missing facet sorts as the empty string) with the normalized
// name as tie breaker.
func SortItems(items []taxonomy.Item, field string) {
	type keyed struct {
		key  string
		tie  string
		item taxonomy.Item
	}

	ks := make([]keyed, len(items))
	for i := range items {
		if field == "name" {
			ks[i] = keyed{
				key:  Normalize(items[i].Name),
				tie:  items[i].Name,
				item: items[i],
			}
		} else {
			ks[i] = keyed{
				key:  Normalize(facetSortValue(&items[i], field)),
				tie:  Normalize(items[i].Name),
				item: items[i],
			}
		}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].key != ks[j].key {
			return ks[i].key < ks[j].key
		}
		return ks[i].tie < ks[j].tie
	})

	for i := range ks {
		items[i] = ks[i].item
	}
}

// facetSortValue renders a facet as a single sortable string: array values
// joined with ", ", missing facets as "".
func facetSortValue(item *taxonomy.Item, facetName string) string {
	v, ok := item.Facet(facetName)
	if !ok {
		return ""
	}
	return v.Join(", ")
}
