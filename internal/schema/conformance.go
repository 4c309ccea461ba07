package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Conformance is a compiled JSON-Schema validator for raw data documents.
// It is a fast structural pre-filter run before the exhaustive domain
// validator: it reports at most the first violation it encounters.
type Conformance struct {
	compiled *gojsonschema.Schema
}

// ConformanceError is a single structural violation, identified by instance
// path and message. Path is "root" for violations at the document root.
type ConformanceError struct {
	Path    string
	Message string
}

func (e *ConformanceError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Path)
}

// NewConformance compiles the raw schema document once. A schema that does
// not compile is itself fatal.
func NewConformance(raw any) (*Conformance, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema compilation error: %w", err)
	}
	return &Conformance{compiled: compiled}, nil
}

// Check runs one structural validation pass over a candidate raw data
// document. It returns nil on success or a *ConformanceError describing the
// first violation.
func (c *Conformance) Check(doc any) error {
	result, err := c.compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	path := first.Field()
	if path == "" || path == "(root)" {
		path = "root"
	}
	return &ConformanceError{Path: path, Message: first.Description()}
}
