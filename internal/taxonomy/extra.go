package taxonomy

import "encoding/json"

// ExtraFields is the ordered opaque key-value bag carried alongside the
// typed fields of Item and Data. Unrecognized JSON keys land here verbatim
// and round-trip through save untouched, in first-seen order. The core never
// interprets the contents.
type ExtraFields struct {
	keys   []string
	values map[string]json.RawMessage
}

// Set stores a raw value under key, preserving insertion order. Setting an
// existing key replaces the value without moving it.
func (e *ExtraFields) Set(key string, raw json.RawMessage) {
	if e.values == nil {
		e.values = make(map[string]json.RawMessage)
	}
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = append(json.RawMessage(nil), raw...)
}

// Get returns the raw value for key.
func (e *ExtraFields) Get(key string) (json.RawMessage, bool) {
	raw, ok := e.values[key]
	return raw, ok
}

// Keys returns the keys in insertion order.
func (e *ExtraFields) Keys() []string { return e.keys }

// Len returns the number of opaque fields.
func (e *ExtraFields) Len() int { return len(e.keys) }
