package validation

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxstud/internal/taxonomy"
)

func testSchema() *taxonomy.Schema {
	return &taxonomy.Schema{
		ID:    "test",
		Title: "Test",
		Hierarchy: taxonomy.ClassicalHierarchy{
			Root: "Beverage",
			Children: []taxonomy.HierarchyNode{
				{Genus: "Beverage", Species: "Coffee", Differentia: "caffeinated", Children: []taxonomy.HierarchyNode{
					{Genus: "Coffee", Species: "Espresso", Differentia: "pressure-brewed"},
				}},
				{Genus: "Beverage", Species: "Tea", Differentia: "steeped"},
			},
		},
		Dimensions: map[string][]string{
			"temperature": {"hot", "iced"},
			"color":       {"red", "blue", "green"},
		},
	}
}

func facet(t *testing.T, raw string) taxonomy.FacetValue {
	t.Helper()
	var v taxonomy.FacetValue
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestValidateAcceptsWellFormedPair(t *testing.T) {
	data := &taxonomy.Data{
		SchemaRef: "schema.json",
		Items: []taxonomy.Item{
			{
				Name:          "Morning Espresso",
				ClassicalPath: []string{"Beverage", "Coffee", "Espresso"},
				Facets:        map[string]taxonomy.FacetValue{"temperature": taxonomy.SingleFacet("hot")},
			},
		},
	}
	assert.Empty(t, Validate(testSchema(), data))
}

func TestValidateHierarchy(t *testing.T) {
	t.Run("Empty Root", func(t *testing.T) {
		h := taxonomy.ClassicalHierarchy{Root: "  "}
		errs := ValidateHierarchy(&h)
		assert.Contains(t, errs, "Classical hierarchy root cannot be empty")
	})

	t.Run("Genus Must Match Parent Species", func(t *testing.T) {
		h := taxonomy.ClassicalHierarchy{
			Root: "Beverage",
			Children: []taxonomy.HierarchyNode{
				{Genus: "Drink", Species: "Coffee", Differentia: "caffeinated"},
			},
		}
		errs := ValidateHierarchy(&h)
		assert.Contains(t, errs, "Species 'Coffee' has genus 'Drink', expected 'Beverage' (parent species)")
	})

	t.Run("Nested Genus Mismatch", func(t *testing.T) {
		h := taxonomy.ClassicalHierarchy{
			Root: "Beverage",
			Children: []taxonomy.HierarchyNode{
				{Genus: "Beverage", Species: "Coffee", Differentia: "caffeinated", Children: []taxonomy.HierarchyNode{
					{Genus: "Beverage", Species: "Espresso", Differentia: "pressure-brewed"},
				}},
			},
		}
		errs := ValidateHierarchy(&h)
		assert.Contains(t, errs, "Species 'Espresso' has genus 'Beverage', expected 'Coffee' (parent species)")
	})

	t.Run("Empty Fields", func(t *testing.T) {
		h := taxonomy.ClassicalHierarchy{
			Root: "Beverage",
			Children: []taxonomy.HierarchyNode{
				{Genus: "", Species: "", Differentia: ""},
			},
		}
		errs := ValidateHierarchy(&h)
		assert.Contains(t, errs, "Hierarchy node genus cannot be empty")
		assert.Contains(t, errs, "Hierarchy node species cannot be empty")
		assert.Contains(t, errs, "Species '' must have non-empty differentia")
	})

	t.Run("Duplicate Species", func(t *testing.T) {
		h := taxonomy.ClassicalHierarchy{
			Root: "Beverage",
			Children: []taxonomy.HierarchyNode{
				{Genus: "Beverage", Species: "Coffee", Differentia: "a"},
				{Genus: "Beverage", Species: "Coffee", Differentia: "b"},
			},
		}
		errs := ValidateHierarchy(&h)
		assert.Contains(t, errs, "Species 'Coffee' is defined more than once in the hierarchy")
	})
}

// Property check over randomly generated trees: validation passes exactly
// when every node's genus equals its structural parent's species.
func TestHierarchyGenusProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	build := func(mutate bool) taxonomy.ClassicalHierarchy {
		counter := 0
		var grow func(parent string, depth int) []taxonomy.HierarchyNode
		grow = func(parent string, depth int) []taxonomy.HierarchyNode {
			if depth >= 4 {
				return nil
			}
			n := rng.Intn(3)
			nodes := make([]taxonomy.HierarchyNode, 0, n)
			for i := 0; i < n; i++ {
				counter++
				sp := fmt.Sprintf("sp%d", counter)
				nodes = append(nodes, taxonomy.HierarchyNode{
					Genus:       parent,
					Species:     sp,
					Differentia: "d",
					Children:    grow(sp, depth+1),
				})
			}
			return nodes
		}

		h := taxonomy.ClassicalHierarchy{Root: "Root"}
		for len(h.Children) == 0 {
			counter = 0
			h.Children = grow("Root", 0)
		}
		if mutate {
			h.Children[rng.Intn(len(h.Children))].Genus = "bogus"
		}
		return h
	}

	for i := 0; i < 50; i++ {
		valid := build(false)
		assert.Empty(t, ValidateHierarchy(&valid))

		broken := build(true)
		assert.NotEmpty(t, ValidateHierarchy(&broken))
	}
}

func TestValidateDimensions(t *testing.T) {
	t.Run("None Declared", func(t *testing.T) {
		sch := testSchema()
		sch.Dimensions = nil
		errs := Validate(sch, &taxonomy.Data{})
		assert.Contains(t, errs, "At least one faceted dimension must be defined")
	})

	t.Run("Empty And Duplicate Values", func(t *testing.T) {
		sch := testSchema()
		sch.Dimensions = map[string][]string{
			"temperature": {"hot", " ", "hot", "hot"},
			"":            {},
		}
		errs := Validate(sch, &taxonomy.Data{})
		assert.Contains(t, errs, "Facet names cannot be empty")
		assert.Contains(t, errs, "Facet '' must have at least one value")
		assert.Contains(t, errs, "Facet 'temperature' contains empty value")
		// Both repeat occurrences reported
		count := 0
		for _, e := range errs {
			if e == "Facet 'temperature' has duplicate value: 'hot'" {
				count++
			}
		}
		assert.Equal(t, 2, count)
	})
}

func TestValidateItems(t *testing.T) {
	sch := testSchema()

	item := func(name string, path []string, facets map[string]taxonomy.FacetValue) taxonomy.Item {
		return taxonomy.Item{Name: name, ClassicalPath: path, Facets: facets}
	}
	hot := map[string]taxonomy.FacetValue{"temperature": taxonomy.SingleFacet("hot")}

	t.Run("Duplicate Names Reported For Every Occurrence", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("Espresso", []string{"Beverage", "Coffee", "Espresso"}, hot),
			item("Espresso", []string{"Beverage", "Coffee", "Espresso"}, hot),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('Espresso'): duplicate item name")
		assert.Contains(t, errs, "Item #2 ('Espresso'): duplicate item name")
	})

	t.Run("Path Must Start At Root", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Coffee", "Espresso"}, hot),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): classical_path must start with root 'Beverage', found 'Coffee'")
	})

	t.Run("Path Edges Must Exist", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Beverage", "Espresso"}, hot),
			item("Y", []string{"Beverage", "Tea", "Espresso"}, hot),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): invalid classical_path - 'Espresso' is not a valid child of 'Beverage'")
		assert.Contains(t, errs, "Item #2 ('Y'): invalid classical_path - 'Tea' has no defined children")
	})

	t.Run("Empty Path And Name", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("", nil, hot),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 (''): name cannot be empty")
		assert.Contains(t, errs, "Item #1 (''): classical_path cannot be empty")
	})

	t.Run("At Least One Facet", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Beverage"}, nil),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): must have at least one facet")
	})

	t.Run("Undefined Facet Skipped For Membership", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Beverage"}, map[string]taxonomy.FacetValue{
				"flavor": taxonomy.SingleFacet("bitter"),
			}),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): uses undefined facet 'flavor'")
		for _, e := range errs {
			assert.NotContains(t, e, "bitter", "membership not checked for undefined facets")
		}
	})

	t.Run("Membership", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Beverage"}, map[string]taxonomy.FacetValue{
				"temperature": taxonomy.SingleFacet("lukewarm"),
				"color":       taxonomy.MultiFacet("red", "purple"),
			}),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): facet 'temperature' has invalid value 'lukewarm' (not in allowed values)")
		assert.Contains(t, errs, "Item #1 ('X'): facet 'color' has invalid value 'purple' (not in allowed values)")
	})

	t.Run("Array Shape Violations", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Beverage"}, map[string]taxonomy.FacetValue{
				"color":       facet(t, `["red", 1, 2]`),
				"temperature": facet(t, `[]`),
			}),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): facet 'temperature' has empty array")
		count := 0
		for _, e := range errs {
			if e == "Item #1 ('X'): facet 'color' array contains non-string value" {
				count++
			}
		}
		assert.Equal(t, 2, count, "non-string elements reported individually")
	})

	t.Run("Wrong Value Type", func(t *testing.T) {
		data := &taxonomy.Data{Items: []taxonomy.Item{
			item("X", []string{"Beverage"}, map[string]taxonomy.FacetValue{
				"temperature": facet(t, `42`),
			}),
		}}
		errs := Validate(sch, data)
		assert.Contains(t, errs, "Item #1 ('X'): facet 'temperature' must be a string or array of strings")
	})
}

// Accepted data satisfies the path invariant: every path starts at the root
// and each adjacent pair is a genuine tree edge.
func TestAcceptedPathsAreTreeEdges(t *testing.T) {
	sch := testSchema()
	data := &taxonomy.Data{Items: []taxonomy.Item{
		{Name: "A", ClassicalPath: []string{"Beverage", "Coffee", "Espresso"},
			Facets: map[string]taxonomy.FacetValue{"temperature": taxonomy.SingleFacet("hot")}},
		{Name: "B", ClassicalPath: []string{"Beverage", "Tea"},
			Facets: map[string]taxonomy.FacetValue{"temperature": taxonomy.SingleFacet("iced")}},
	}}
	require.Empty(t, Validate(sch, data))

	edges := sch.Hierarchy.ChildMap()
	for _, it := range data.Items {
		assert.Equal(t, sch.Hierarchy.Root, it.ClassicalPath[0])
		for i := 0; i+1 < len(it.ClassicalPath); i++ {
			assert.Contains(t, edges[it.ClassicalPath[i]], it.ClassicalPath[i+1])
		}
	}
}

func TestValidatePath(t *testing.T) {
	sch := testSchema()

	assert.NoError(t, ValidatePath(sch, []string{"Beverage"}))
	assert.NoError(t, ValidatePath(sch, []string{"Beverage", "Coffee", "Espresso"}))
	assert.Error(t, ValidatePath(sch, nil))
	assert.Error(t, ValidatePath(sch, []string{"Coffee"}))
	assert.Error(t, ValidatePath(sch, []string{"Beverage", "Espresso"}))
	assert.Error(t, ValidatePath(sch, []string{"Beverage", "Tea", "Green"}))
}

func TestErrorList(t *testing.T) {
	assert.NoError(t, AsError(nil))
	err := AsError([]string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 validation error(s)")
}
