// Package taxonomy provides the shared value types for the hybrid taxonomy
// model: a classical genus/species hierarchy crossed with faceted dimensions,
// applied to a collection of catalog items.
// This package is a leaf; every other package (schema, validation, query,
// store) depends on it and it depends on nothing above the standard library.
package taxonomy

// HierarchyNode is one node of the classical hierarchy. A node's Genus must
// equal the Species of its structural parent (or the hierarchy root name for
// top-level nodes); Species values are tree-wide identifiers.
type HierarchyNode struct {
	Genus       string          `json:"genus"`
	Species     string          `json:"species"`
	Differentia string          `json:"differentia"`
	Children    []HierarchyNode `json:"children,omitempty"`
}

// ClassicalHierarchy is the single rooted tree of genus/species nodes.
type ClassicalHierarchy struct {
	Root     string          `json:"root"`
	Children []HierarchyNode `json:"children,omitempty"`
}

// ChildMap returns the parent-name -> child-species lookup for the whole
// tree, built with one iterative pre-order traversal. The traversal is
// stack-based rather than recursive so pathologically deep hierarchies
// cannot exhaust the goroutine stack.
func (h *ClassicalHierarchy) ChildMap() map[string][]string {
	edges := make(map[string][]string)

	type frame struct {
		parent string
		nodes  []HierarchyNode
	}
	stack := []frame{{parent: h.Root, nodes: h.Children}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.nodes) == 0 {
			continue
		}
		names := make([]string, 0, len(f.nodes))
		for _, n := range f.nodes {
			names = append(names, n.Species)
		}
		edges[f.parent] = append(edges[f.parent], names...)

		// Push in reverse so children are visited in document order.
		for i := len(f.nodes) - 1; i >= 0; i-- {
			stack = append(stack, frame{parent: f.nodes[i].Species, nodes: f.nodes[i].Children})
		}
	}

	return edges
}

// Schema is the typed schema extracted from a JSON-Schema document: the
// classical hierarchy, the facet catalog and document metadata. Raw retains
// the original parsed JSON-Schema document for conformance validation.
type Schema struct {
	ID          string
	Title       string
	Description string
	Hierarchy   ClassicalHierarchy
	Dimensions  map[string][]string
	Raw         any
}

// Filters is the ephemeral query object consumed by the filter engine.
// Genera is an OR-set of genus names; Facets maps a facet name to an OR-set
// of required values. Distinct facet names AND together, as does the genus
// clause against the facet clauses.
type Filters struct {
	Genera []string
	Facets map[string][]string
}

// Empty reports whether no filter clause is active.
func (f Filters) Empty() bool {
	return len(f.Genera) == 0 && len(f.Facets) == 0
}
