// Package schema turns a raw JSON-Schema document into a typed
// taxonomy.Schema and validates raw data documents against it. Extraction
// reads the two taxonomy-specific top-level properties (classical_hierarchy,
// faceted_dimensions) plus metadata; every other keyword in the document is
// left alone and only matters to the conformance pass.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"taxstud/internal/taxonomy"
)

// Defaults applied when the optional metadata keys are absent.
const (
	DefaultID    = "unknown"
	DefaultTitle = "Untitled Taxonomy"
)

var (
	// ErrNotObject reports a schema document whose root is not an object.
	ErrNotObject = errors.New("schema document must be a JSON object")
	// ErrMissingHierarchy reports an absent classical_hierarchy property.
	ErrMissingHierarchy = errors.New("JSON Schema missing 'classical_hierarchy' property")
	// ErrMissingDimensions reports an absent faceted_dimensions property.
	ErrMissingDimensions = errors.New("JSON Schema missing 'faceted_dimensions' property")
)

// Extract builds a typed Schema from an already-parsed JSON-Schema document.
// The returned Schema retains the original document for conformance checks.
func Extract(doc any) (*taxonomy.Schema, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}

	hierarchy, err := extractHierarchy(obj)
	if err != nil {
		return nil, err
	}
	dimensions, err := extractDimensions(obj)
	if err != nil {
		return nil, err
	}

	sch := &taxonomy.Schema{
		ID:         DefaultID,
		Title:      DefaultTitle,
		Hierarchy:  hierarchy,
		Dimensions: dimensions,
		Raw:        doc,
	}
	if id, ok := obj["$id"].(string); ok {
		sch.ID = id
	}
	if title, ok := obj["title"].(string); ok {
		sch.Title = title
	}
	if desc, ok := obj["description"].(string); ok {
		sch.Description = desc
	}
	return sch, nil
}

func extractHierarchy(obj map[string]any) (taxonomy.ClassicalHierarchy, error) {
	var hierarchy taxonomy.ClassicalHierarchy
	sub, ok := obj["classical_hierarchy"]
	if !ok {
		return hierarchy, ErrMissingHierarchy
	}
	if err := reparse(sub, &hierarchy); err != nil {
		return hierarchy, fmt.Errorf("failed to parse classical_hierarchy: %w", err)
	}
	return hierarchy, nil
}

func extractDimensions(obj map[string]any) (map[string][]string, error) {
	sub, ok := obj["faceted_dimensions"]
	if !ok {
		return nil, ErrMissingDimensions
	}
	var dimensions map[string][]string
	if err := reparse(sub, &dimensions); err != nil {
		return nil, fmt.Errorf("failed to parse faceted_dimensions: %w", err)
	}
	return dimensions, nil
}

// reparse re-encodes a generic JSON value into a typed destination.
func reparse(v any, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
