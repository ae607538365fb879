package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["epsilon"],
	"properties": {
		"epsilon": {"type": "number", "exclusiveMinimum": 0},
		"goal": {"type": "integer", "minimum": 1}
	}
}`

func TestValidateDataAccepts(t *testing.T) {
	v, err := NewValidator([]byte(testSchema))
	require.NoError(t, err)

	diags, err := v.ValidateData(map[string]interface{}{"epsilon": 0.5, "goal": 2})
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestValidateDataRejectsMissingRequired(t *testing.T) {
	v, err := NewValidator([]byte(testSchema))
	require.NoError(t, err)

	diags, err := v.ValidateData(map[string]interface{}{"goal": 2})
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestValidateJSON(t *testing.T) {
	v, err := NewValidator([]byte(testSchema))
	require.NoError(t, err)

	diags, err := v.ValidateJSON([]byte(`{"epsilon": -1}`))
	require.NoError(t, err)
	assert.NotEmpty(t, diags)
}

func TestValidateFileYAML(t *testing.T) {
	v, err := NewValidator([]byte(testSchema))
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epsilon: 0.1\ngoal: 1\n"), 0o644))

	diags, err := v.ValidateFile(path)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestNewValidatorRejectsMalformedSchema(t *testing.T) {
	_, err := NewValidator([]byte(`{"type": "not-a-real-type"`))
	assert.Error(t, err)
}
