// Package schema validates a CLI config document (JSON or YAML) against
// an embedded JSON Schema before cmd/shadowdp acts on it.
//
// Grounded on schema/validator.go's Validator/NewValidator/ValidateData
// shape, trimmed down to a single standalone schema with no external
// $ref resolution: the teacher's localLoader/Catalog machinery exists to
// compose a multi-file schema catalog out of the `crucible` monorepo's
// schemas/crucible-go tree, which this module never ships (DESIGN.md),
// so config.schema.json has no $ref outside the draft's own metaschema,
// which santhosh-tekuri/jsonschema/v5 already knows how to validate
// against without a custom URL loader.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Validator wraps a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

const virtualSchemaURL = "memory://schema.json"

// NewValidator compiles a standalone schema from raw bytes.
func NewValidator(schemaData []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(virtualSchemaURL, strings.NewReader(string(schemaData))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(virtualSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateData validates an in-memory value against the schema.
func (v *Validator) ValidateData(data interface{}) ([]Diagnostic, error) {
	err := v.schema.Validate(data)
	if err == nil {
		return nil, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	return diagnosticsFromValidationError(validationErr, sourceShadowDP), nil
}

// ValidateJSON validates JSON bytes.
func (v *Validator) ValidateJSON(jsonData []byte) ([]Diagnostic, error) {
	var payload interface{}
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v.ValidateData(payload)
}

// ValidateFile validates a JSON or YAML file on disk, sniffing the
// format from its content rather than its extension.
func (v *Validator) ValidateFile(path string) ([]Diagnostic, error) {
	// #nosec G304 -- path is an operator-supplied --config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isJSON(content) {
		return v.ValidateJSON(content)
	}

	var payload interface{}
	if err := yaml.Unmarshal(content, &payload); err != nil {
		return nil, err
	}
	return v.ValidateData(payload)
}

func isJSON(content []byte) bool {
	trimmed := strings.TrimSpace(string(content))
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
