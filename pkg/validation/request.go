package validation

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/iwvelando/income-eligibility/pkg/measures"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalidRequest is returned when a request document does not satisfy its schema.
var ErrInvalidRequest = fmt.Errorf("%w: request document", measures.ErrInvalidInput)

// Schema names for the embedded request schemas.
const (
	ScreenRequestSchema   = "screen"
	MeasuresRequestSchema = "measures"
)

// FieldError describes one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// RequestError carries every violation found in a document.
type RequestError struct {
	Schema string
	Fields []FieldError
}

func (e *RequestError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s request failed validation: %s", e.Schema, strings.Join(parts, "; "))
}

func (e *RequestError) Unwrap() error {
	return ErrInvalidRequest
}

// RequestValidator validates JSON documents against compiled schemas.
type RequestValidator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewRequestValidator compiles the embedded request schemas.
func NewRequestValidator() (*RequestValidator, error) {
	v := &RequestValidator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, name := range []string{ScreenRequestSchema, MeasuresRequestSchema} {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schema: %w", name, err)
		}
		if err := v.Register(name, raw); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Register compiles a schema document under the given name.
func (v *RequestValidator) Register(name string, raw []byte) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to compile %s schema: %w", name, err)
	}
	v.schemas[name] = schema
	return nil
}

// Validate checks doc against the named schema. A malformed document or a
// schema violation both produce an error wrapping ErrInvalidRequest.
func (v *RequestValidator) Validate(name string, doc []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown request schema %q", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if result.Valid() {
		return nil
	}

	reqErr := &RequestError{Schema: name}
	for _, desc := range result.Errors() {
		reqErr.Fields = append(reqErr.Fields, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return reqErr
}

// FieldErrors extracts the schema violations from err, if any.
func FieldErrors(err error) []FieldError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Fields
	}
	return nil
}
