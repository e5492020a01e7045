package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://recallkit-report.json"

// ErrInvalidReport wraps a schema violation.
type ErrInvalidReport struct {
	Err error
}

func (e *ErrInvalidReport) Error() string {
	return fmt.Sprintf("invalid report: %v", e.Err)
}

func (e *ErrInvalidReport) Unwrap() error { return e.Err }

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse report schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add report schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// Verify checks raw report JSON against the report schema. Schema
// violations are returned as *ErrInvalidReport.
func Verify(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &ErrInvalidReport{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := schema.Validate(doc); err != nil {
		return &ErrInvalidReport{Err: err}
	}
	return nil
}
