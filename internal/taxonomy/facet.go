package taxonomy

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FacetKind discriminates the two legal facet value shapes plus the illegal
// remainder the validator has to report on.
type FacetKind int

const (
	// FacetSingle is a single string value.
	FacetSingle FacetKind = iota
	// FacetMulti is an array value.
	FacetMulti
	// FacetInvalid is any other JSON shape (number, object, bool, null).
	FacetInvalid
)

// FacetValue is the tagged union for an item's facet assignment: either a
// single string or an array of strings. The original wire bytes are retained
// so that saving never rewrites a value the validator has not accepted, and
// so non-string array elements stay visible for reporting.
type FacetValue struct {
	kind    FacetKind
	single  string
	multi   []string
	dropped int             // non-string array elements not included in multi
	raw     json.RawMessage // original bytes, nil for constructed values
}

// SingleFacet returns a single-string facet value.
func SingleFacet(v string) FacetValue {
	return FacetValue{kind: FacetSingle, single: v}
}

// MultiFacet returns an array facet value.
func MultiFacet(vs ...string) FacetValue {
	return FacetValue{kind: FacetMulti, multi: vs}
}

// Kind returns the decoded shape of the value.
func (v FacetValue) Kind() FacetKind { return v.kind }

// Values is the shared normalization accessor used identically by filter,
// sort, group and validation: a single string becomes a one-element list, an
// array contributes its string elements in order (non-strings dropped), and
// an invalid value contributes nothing.
func (v FacetValue) Values() []string {
	switch v.kind {
	case FacetSingle:
		return []string{v.single}
	case FacetMulti:
		return v.multi
	default:
		return nil
	}
}

// Join renders the normalized values as a single display/sort string.
func (v FacetValue) Join(sep string) string {
	return strings.Join(v.Values(), sep)
}

// Dropped reports how many non-string elements an array value carried.
func (v FacetValue) Dropped() int { return v.dropped }

// EmptyArray reports whether the value is an array with no elements at all.
func (v FacetValue) EmptyArray() bool {
	return v.kind == FacetMulti && len(v.multi) == 0 && v.dropped == 0
}

// UnmarshalJSON decodes a string or array value and keeps the raw bytes.
func (v *FacetValue) UnmarshalJSON(b []byte) error {
	v.raw = append(json.RawMessage(nil), b...)

	// null unmarshals into a slice without error, so catch it before the
	// array attempt.
	if string(bytes.TrimSpace(b)) == "null" {
		v.kind = FacetInvalid
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.kind = FacetSingle
		v.single = s
		return nil
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(b, &arr); err == nil {
		v.kind = FacetMulti
		v.multi = nil
		v.dropped = 0
		for _, el := range arr {
			var es string
			if err := json.Unmarshal(el, &es); err == nil {
				v.multi = append(v.multi, es)
			} else {
				v.dropped++
			}
		}
		return nil
	}

	v.kind = FacetInvalid
	return nil
}

// MarshalJSON writes the original bytes when the value came off the wire,
// otherwise encodes the constructed variant.
func (v FacetValue) MarshalJSON() ([]byte, error) {
	if v.raw != nil {
		return v.raw, nil
	}
	switch v.kind {
	case FacetSingle:
		return json.Marshal(v.single)
	case FacetMulti:
		vs := v.multi
		if vs == nil {
			vs = []string{}
		}
		return json.Marshal(vs)
	default:
		return []byte("null"), nil
	}
}
