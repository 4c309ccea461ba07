// Package validation implements the domain-level business rules for the
// hybrid taxonomy model: hierarchy well-formedness, facet dimension
// integrity, and item referential integrity. Unlike the conformance
// pre-filter, every check runs to completion and every violation is
// reported, so a user can fix all problems in one pass.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"taxstud/internal/taxonomy"
)

// ErrorList is the exhaustive batch of violations produced by Validate,
// usable as an error by callers that refuse invalid data.
type ErrorList []string

func (e ErrorList) Error() string {
	return fmt.Sprintf("%d validation error(s): %s", len(e), strings.Join(e, "; "))
}

// AsError wraps a non-empty violation list as an error, nil otherwise.
func AsError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return ErrorList(violations)
}

// Validate runs every domain check over a typed schema and data pair and
// returns the ordered list of human-readable violations. An empty list
// means the pair is valid. No check short-circuits and nothing is repaired.
func Validate(sch *taxonomy.Schema, data *taxonomy.Data) []string {
	var errs []string

	errs = append(errs, ValidateHierarchy(&sch.Hierarchy)...)
	errs = append(errs, validateDimensions(sch.Dimensions)...)

	if data != nil && len(data.Items) > 0 {
		errs = append(errs, validateItems(data.Items, sch)...)
	}

	return errs
}

// ValidateHierarchy checks structural integrity of the classical hierarchy:
// a non-empty root, non-empty node fields, each node's genus equal to its
// structural parent's species (the root name at depth 1), and tree-wide
// uniqueness of species names. The walk is iterative so adversarially deep
// trees cannot blow the stack.
func ValidateHierarchy(h *taxonomy.ClassicalHierarchy) []string {
	var errs []string

	if strings.TrimSpace(h.Root) == "" {
		errs = append(errs, "Classical hierarchy root cannot be empty")
	}

	type frame struct {
		parent string
		node   taxonomy.HierarchyNode
	}
	var stack []frame
	for i := len(h.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{parent: h.Root, node: h.Children[i]})
	}

	seen := make(map[string]int)
	var order []string

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := f.node

		if strings.TrimSpace(node.Genus) == "" {
			errs = append(errs, "Hierarchy node genus cannot be empty")
		}
		if strings.TrimSpace(node.Species) == "" {
			errs = append(errs, "Hierarchy node species cannot be empty")
		}
		if strings.TrimSpace(node.Differentia) == "" {
			errs = append(errs, fmt.Sprintf("Species '%s' must have non-empty differentia", node.Species))
		}
		if node.Genus != f.parent {
			errs = append(errs, fmt.Sprintf("Species '%s' has genus '%s', expected '%s' (parent species)",
				node.Species, node.Genus, f.parent))
		}

		if seen[node.Species] == 0 {
			order = append(order, node.Species)
		}
		seen[node.Species]++

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{parent: node.Species, node: node.Children[i]})
		}
	}

	// Species names are tree-wide identifiers; a collision would make path
	// validation ambiguous.
	for _, sp := range order {
		if seen[sp] > 1 {
			errs = append(errs, fmt.Sprintf("Species '%s' is defined more than once in the hierarchy", sp))
		}
	}

	return errs
}

func validateDimensions(dims map[string][]string) []string {
	var errs []string

	if len(dims) == 0 {
		errs = append(errs, "At least one faceted dimension must be defined")
		return errs
	}

	names := make([]string, 0, len(dims))
	for name := range dims {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := dims[name]
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "Facet names cannot be empty")
		}
		if len(values) == 0 {
			errs = append(errs, fmt.Sprintf("Facet '%s' must have at least one value", name))
		}

		seen := make(map[string]bool, len(values))
		for _, value := range values {
			if strings.TrimSpace(value) == "" {
				errs = append(errs, fmt.Sprintf("Facet '%s' contains empty value", name))
			}
			if seen[value] {
				errs = append(errs, fmt.Sprintf("Facet '%s' has duplicate value: '%s'", name, value))
			}
			seen[value] = true
		}
	}

	return errs
}

func validateItems(items []taxonomy.Item, sch *taxonomy.Schema) []string {
	var errs []string

	// Parent -> children edges, built once for the whole collection.
	edges := sch.Hierarchy.ChildMap()

	// Count names first so every duplicated occurrence gets a report, not
	// just the second one onward.
	nameCount := make(map[string]int, len(items))
	for i := range items {
		nameCount[items[i].Name]++
	}

	for i := range items {
		item := &items[i]
		ref := fmt.Sprintf("Item #%d ('%s')", i+1, item.Name)

		if strings.TrimSpace(item.Name) == "" {
			errs = append(errs, fmt.Sprintf("%s: name cannot be empty", ref))
		}
		if nameCount[item.Name] > 1 {
			errs = append(errs, fmt.Sprintf("%s: duplicate item name", ref))
		}

		if len(item.ClassicalPath) == 0 {
			errs = append(errs, fmt.Sprintf("%s: classical_path cannot be empty", ref))
		} else {
			if item.ClassicalPath[0] != sch.Hierarchy.Root {
				errs = append(errs, fmt.Sprintf("%s: classical_path must start with root '%s', found '%s'",
					ref, sch.Hierarchy.Root, item.ClassicalPath[0]))
			}
			errs = append(errs, validatePathEdges(item.ClassicalPath, edges, ref)...)
		}

		if len(item.Facets) == 0 {
			errs = append(errs, fmt.Sprintf("%s: must have at least one facet", ref))
		}
		errs = append(errs, validateItemFacets(item, sch.Dimensions, ref)...)
	}

	return errs
}

func validatePathEdges(path []string, edges map[string][]string, ref string) []string {
	var errs []string

	for i := 0; i+1 < len(path); i++ {
		parent, child := path[i], path[i+1]
		children, ok := edges[parent]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: invalid classical_path - '%s' has no defined children",
				ref, parent))
			continue
		}
		if !contains(children, child) {
			errs = append(errs, fmt.Sprintf("%s: invalid classical_path - '%s' is not a valid child of '%s'",
				ref, child, parent))
		}
	}

	return errs
}

func validateItemFacets(item *taxonomy.Item, dims map[string][]string, ref string) []string {
	var errs []string

	names := make([]string, 0, len(item.Facets))
	for name := range item.Facets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := item.Facets[name]

		allowed, declared := dims[name]
		if !declared {
			errs = append(errs, fmt.Sprintf("%s: uses undefined facet '%s'", ref, name))
			continue
		}

		switch value.Kind() {
		case taxonomy.FacetSingle, taxonomy.FacetMulti:
			if value.EmptyArray() {
				errs = append(errs, fmt.Sprintf("%s: facet '%s' has empty array", ref, name))
			}
			for _, v := range value.Values() {
				if !contains(allowed, v) {
					errs = append(errs, fmt.Sprintf("%s: facet '%s' has invalid value '%s' (not in allowed values)",
						ref, name, v))
				}
			}
			for j := 0; j < value.Dropped(); j++ {
				errs = append(errs, fmt.Sprintf("%s: facet '%s' array contains non-string value", ref, name))
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: facet '%s' must be a string or array of strings", ref, name))
		}
	}

	return errs
}

// ValidatePath checks a single classical path against a schema without
// running the full item validator. Item editors use it before committing an
// edit.
func ValidatePath(sch *taxonomy.Schema, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("classical_path cannot be empty")
	}
	if path[0] != sch.Hierarchy.Root {
		return fmt.Errorf("classical_path must start with root '%s', found '%s'", sch.Hierarchy.Root, path[0])
	}

	edges := sch.Hierarchy.ChildMap()
	for i := 0; i+1 < len(path); i++ {
		parent, child := path[i], path[i+1]
		children, ok := edges[parent]
		if !ok {
			return fmt.Errorf("'%s' has no defined children", parent)
		}
		if !contains(children, child) {
			return fmt.Errorf("'%s' is not a valid child of '%s'", child, parent)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
