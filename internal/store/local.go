// Package store is the persistence adapter: whole-file JSON load/save of
// data documents with schema auto-resolution. The load protocol is staged -
// read, parse, extract schema, conformance-check, typed decode, domain
// validate - and nothing partially loads: any failure at any stage aborts
// with the complete error information. Writes are plain overwrites; callers
// needing atomicity must write-to-temp-then-rename themselves.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"taxstud/internal/logging"
	"taxstud/internal/schema"
	"taxstud/internal/taxonomy"
	"taxstud/internal/validation"
)

// LoadSchema reads, parses, extracts and compiles a schema file. The
// returned Conformance is the compiled validator for the retained raw
// document.
func LoadSchema(path string) (*taxonomy.Schema, *schema.Conformance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing schema file %s: %w", path, err)
	}

	sch, err := schema.Extract(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting schema from %s: %w", path, err)
	}

	conformance, err := schema.NewConformance(sch.Raw)
	if err != nil {
		return nil, nil, fmt.Errorf("compiling schema %s: %w", path, err)
	}

	logging.Schema("Loaded schema '%s' (%s) from %s", sch.Title, sch.ID, path)
	return sch, conformance, nil
}

// Load runs the full load protocol for a data file: resolve its schema
// reference relative to the data file's directory, load and compile that
// schema, conformance-check the raw data document, decode it into the typed
// model, and domain-validate the result. Domain violations come back as a
// validation.ErrorList.
func Load(path string) (*taxonomy.Data, *taxonomy.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading data file %s: %w", path, err)
	}

	var rawDoc any
	if err := json.Unmarshal(raw, &rawDoc); err != nil {
		return nil, nil, fmt.Errorf("parsing data file %s: %w", path, err)
	}

	ref := schemaRef(rawDoc)
	if ref == "" {
		return nil, nil, fmt.Errorf("data file %s has no 'schema' reference", path)
	}
	schemaPath := filepath.Join(filepath.Dir(path), ref)

	sch, conformance, err := LoadSchema(schemaPath)
	if err != nil {
		return nil, nil, err
	}

	if err := conformance.Check(rawDoc); err != nil {
		return nil, nil, fmt.Errorf("data file %s does not conform to schema: %w", path, err)
	}

	var data taxonomy.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, nil, fmt.Errorf("decoding data file %s: %w", path, err)
	}

	if violations := validation.Validate(sch, &data); len(violations) > 0 {
		return nil, nil, fmt.Errorf("validating %s: %w", path, validation.ErrorList(violations))
	}

	logging.Store("Loaded %d item(s) from %s (schema %s)", len(data.Items), path, ref)
	return &data, sch, nil
}

// Validate re-runs the domain validator over an in-memory pair, as callers
// must after mutating items and before persisting.
func Validate(sch *taxonomy.Schema, data *taxonomy.Data) error {
	return validation.AsError(validation.Validate(sch, data))
}

// Save serializes a data document to pretty-printed JSON and overwrites the
// target path. Unrecognized fields round-trip byte-for-byte through the
// opaque bags.
func Save(data *taxonomy.Data, path string) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}

	pretty, err := indent(b)
	if err != nil {
		return fmt.Errorf("formatting data: %w", err)
	}

	if err := os.WriteFile(path, pretty, 0644); err != nil {
		return fmt.Errorf("writing data file %s: %w", path, err)
	}

	logging.Store("Saved %d item(s) to %s", len(data.Items), path)
	return nil
}

// SaveSchemaDoc writes a raw schema document pretty-printed, used when
// scaffolding a new taxonomy pair.
func SaveSchemaDoc(doc any, path string) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	pretty, err := indent(b)
	if err != nil {
		return fmt.Errorf("formatting schema: %w", err)
	}
	if err := os.WriteFile(path, pretty, 0644); err != nil {
		return fmt.Errorf("writing schema file %s: %w", path, err)
	}
	return nil
}

// SchemaRefFromBytes extracts the schema reference from a raw data file
// without running the load pipeline. Returns "" when the document has none.
func SchemaRefFromBytes(raw []byte) string {
	var rawDoc any
	if err := json.Unmarshal(raw, &rawDoc); err != nil {
		return ""
	}
	return schemaRef(rawDoc)
}

// schemaRef pulls the schema reference out of the raw document before the
// typed decode runs, so resolution failures surface with the right stage.
func schemaRef(rawDoc any) string {
	obj, ok := rawDoc.(map[string]any)
	if !ok {
		return ""
	}
	ref, _ := obj["schema"].(string)
	return ref
}

func indent(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
