package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeObject walks the top-level JSON object in b in document order and
// hands each key and its raw value bytes to field. Document order is what
// lets the extra-field bag stay ordered; plain map decoding would lose it.
func decodeObject(b []byte, field func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding value for %q: %w", key, err)
		}
		if err := field(key, raw); err != nil {
			return err
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// objectEncoder builds a JSON object with explicit field order.
type objectEncoder struct {
	buf   bytes.Buffer
	count int
	err   error
}

func (e *objectEncoder) field(key string, v any) {
	if e.err != nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		e.err = err
		return
	}
	e.rawField(key, raw)
}

func (e *objectEncoder) rawField(key string, raw json.RawMessage) {
	if e.err != nil {
		return
	}
	if e.count == 0 {
		e.buf.WriteByte('{')
	} else {
		e.buf.WriteByte(',')
	}
	keyBytes, err := json.Marshal(key)
	if err != nil {
		e.err = err
		return
	}
	e.buf.Write(keyBytes)
	e.buf.WriteByte(':')
	e.buf.Write(raw)
	e.count++
}

func (e *objectEncoder) bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.count == 0 {
		return []byte("{}"), nil
	}
	e.buf.WriteByte('}')
	return e.buf.Bytes(), nil
}
