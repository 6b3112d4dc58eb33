// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package artifact

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed metadata.schema.json
var metadataSchema string

var metadataSchemaLoader = gojsonschema.NewStringLoader(metadataSchema)

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError lists every schema violation of a metadata document.
type SchemaError struct {
	Errors []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "metadata does not match schema: " + strings.Join(parts, "; ")
}

// validateMetadata checks a decoded metadata document against the
// embedded schema.
func validateMetadata(doc any) error {
	result, err := gojsonschema.Validate(metadataSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating metadata: %w", err)
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		se.Errors = append(se.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return se
}
