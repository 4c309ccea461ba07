package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestExtract(t *testing.T) {
	doc := parseDoc(t, `{
		"$id": "test-schema",
		"title": "Test Schema",
		"description": "A test schema",
		"classical_hierarchy": {
			"root": "TestRoot",
			"children": [{
				"genus": "TestRoot",
				"species": "TestSpecies",
				"differentia": "test differentia"
			}]
		},
		"faceted_dimensions": {
			"color": ["red", "green", "blue"],
			"size": ["small", "medium", "large"]
		}
	}`)

	sch, err := Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, "test-schema", sch.ID)
	assert.Equal(t, "Test Schema", sch.Title)
	assert.Equal(t, "A test schema", sch.Description)
	assert.Equal(t, "TestRoot", sch.Hierarchy.Root)
	require.Len(t, sch.Hierarchy.Children, 1)
	assert.Equal(t, "TestSpecies", sch.Hierarchy.Children[0].Species)
	assert.Len(t, sch.Dimensions, 2)
	assert.Len(t, sch.Dimensions["color"], 3)
	assert.Equal(t, doc, sch.Raw, "original document retained for conformance")
}

func TestExtractMetadataDefaults(t *testing.T) {
	doc := parseDoc(t, `{
		"classical_hierarchy": {"root": "Root"},
		"faceted_dimensions": {"category": ["a"]}
	}`)

	sch, err := Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, DefaultID, sch.ID)
	assert.Equal(t, DefaultTitle, sch.Title)
	assert.Empty(t, sch.Description)
}

func TestExtractMissingKeys(t *testing.T) {
	t.Run("Missing Hierarchy", func(t *testing.T) {
		doc := parseDoc(t, `{"faceted_dimensions": {}}`)
		_, err := Extract(doc)
		assert.ErrorIs(t, err, ErrMissingHierarchy)
	})

	t.Run("Missing Dimensions", func(t *testing.T) {
		doc := parseDoc(t, `{"classical_hierarchy": {"root": "Test"}}`)
		_, err := Extract(doc)
		assert.ErrorIs(t, err, ErrMissingDimensions)
	})

	t.Run("Not An Object", func(t *testing.T) {
		_, err := Extract([]any{})
		assert.ErrorIs(t, err, ErrNotObject)
	})
}

func TestExtractMalformedSubDocuments(t *testing.T) {
	t.Run("Hierarchy Wrong Shape", func(t *testing.T) {
		doc := parseDoc(t, `{
			"classical_hierarchy": {"root": 42},
			"faceted_dimensions": {"a": ["b"]}
		}`)
		_, err := Extract(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "classical_hierarchy")
	})

	t.Run("Dimensions Wrong Shape", func(t *testing.T) {
		doc := parseDoc(t, `{
			"classical_hierarchy": {"root": "Root"},
			"faceted_dimensions": {"color": "red"}
		}`)
		_, err := Extract(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "faceted_dimensions")
	})
}
