package taxonomy

import (
	"encoding/json"
	"fmt"
)

// Item is one cataloged entity: a unique name, a path through the classical
// hierarchy, zero-or-more facet assignments, and an opaque bag of fields the
// model does not recognize.
type Item struct {
	Name          string
	ClassicalPath []string
	Facets        map[string]FacetValue
	Extra         ExtraFields
}

// Facet returns the value for a facet name, if the item carries it.
func (it *Item) Facet(name string) (FacetValue, bool) {
	v, ok := it.Facets[name]
	return v, ok
}

// FacetStrings returns the normalized string values for a facet name, nil
// when the item does not carry the facet.
func (it *Item) FacetStrings(name string) []string {
	v, ok := it.Facets[name]
	if !ok {
		return nil
	}
	return v.Values()
}

// UnmarshalJSON decodes the typed fields and routes every unknown key into
// the ordered extra bag.
func (it *Item) UnmarshalJSON(b []byte) error {
	*it = Item{}
	return decodeObject(b, func(key string, raw json.RawMessage) error {
		switch key {
		case "name":
			if err := json.Unmarshal(raw, &it.Name); err != nil {
				return fmt.Errorf("item name: %w", err)
			}
		case "classical_path":
			if err := json.Unmarshal(raw, &it.ClassicalPath); err != nil {
				return fmt.Errorf("item classical_path: %w", err)
			}
		case "facets":
			if err := json.Unmarshal(raw, &it.Facets); err != nil {
				return fmt.Errorf("item facets: %w", err)
			}
		default:
			it.Extra.Set(key, raw)
		}
		return nil
	})
}

// MarshalJSON writes the typed fields first, then the opaque fields in
// their original order.
func (it Item) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	enc.field("name", it.Name)

	path := it.ClassicalPath
	if path == nil {
		path = []string{}
	}
	enc.field("classical_path", path)

	facets := it.Facets
	if facets == nil {
		facets = map[string]FacetValue{}
	}
	enc.field("facets", facets)

	for _, key := range it.Extra.Keys() {
		raw, _ := it.Extra.Get(key)
		enc.rawField(key, raw)
	}
	return enc.bytes()
}
