package taxonomy

import (
	"encoding/json"
	"fmt"
)

// Data is an item collection bound to its schema by relative filename, plus
// an opaque bag of unrecognized top-level fields.
type Data struct {
	SchemaRef string
	Items     []Item
	Extra     ExtraFields
}

// NewData returns an empty collection referencing the given schema file.
func NewData(schemaRef string) *Data {
	return &Data{SchemaRef: schemaRef}
}

// FindItem returns the index of the item with the given name, or -1.
func (d *Data) FindItem(name string) int {
	for i := range d.Items {
		if d.Items[i].Name == name {
			return i
		}
	}
	return -1
}

// AddItem appends an item, rejecting a duplicate name. Callers are expected
// to re-run domain validation before persisting.
func (d *Data) AddItem(it Item) error {
	if d.FindItem(it.Name) >= 0 {
		return fmt.Errorf("item %q already exists", it.Name)
	}
	d.Items = append(d.Items, it)
	return nil
}

// ReplaceItem swaps the item named name for the given replacement.
func (d *Data) ReplaceItem(name string, it Item) error {
	i := d.FindItem(name)
	if i < 0 {
		return fmt.Errorf("item %q not found", name)
	}
	if it.Name != name && d.FindItem(it.Name) >= 0 {
		return fmt.Errorf("item %q already exists", it.Name)
	}
	d.Items[i] = it
	return nil
}

// RemoveItem deletes the item named name, preserving order.
func (d *Data) RemoveItem(name string) error {
	i := d.FindItem(name)
	if i < 0 {
		return fmt.Errorf("item %q not found", name)
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	return nil
}

// UnmarshalJSON decodes the typed fields and routes unknown top-level keys
// into the ordered extra bag.
func (d *Data) UnmarshalJSON(b []byte) error {
	*d = Data{}
	return decodeObject(b, func(key string, raw json.RawMessage) error {
		switch key {
		case "schema":
			if err := json.Unmarshal(raw, &d.SchemaRef); err != nil {
				return fmt.Errorf("data schema reference: %w", err)
			}
		case "items":
			if err := json.Unmarshal(raw, &d.Items); err != nil {
				return fmt.Errorf("data items: %w", err)
			}
		default:
			d.Extra.Set(key, raw)
		}
		return nil
	})
}

// MarshalJSON writes schema and items first, then the opaque fields in
// their original order.
func (d Data) MarshalJSON() ([]byte, error) {
	enc := &objectEncoder{}
	enc.field("schema", d.SchemaRef)

	items := d.Items
	if items == nil {
		items = []Item{}
	}
	enc.field("items", items)

	for _, key := range d.Extra.Keys() {
		raw, _ := d.Extra.Get(key)
		enc.rawField(key, raw)
	}
	return enc.bytes()
}
