package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

const skillSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"years": {"type": "number"}
	}
}`

func validateString(document string) error {
	return validate("skill", gojsonschema.NewStringLoader(skillSchema), gojsonschema.NewStringLoader(document))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validateString(`{"name": "go", "years": 2}`))

	err := validateString(`{"years": "two"}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)

	fields := []string{ve.Errors[0].Field, ve.Errors[1].Field}
	assert.ElementsMatch(t, []string{"(root)", "years"}, fields)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := validateString(`{"name":`)
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "skill", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "skills", Message: "Invalid type"},
		{Field: "(root)", Message: "job_title is required"},
	}}
	assert.Equal(t, "validation failed:\n  1. skills: Invalid type\n  2. (root): job_title is required\n", err.Error())
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("bad ref")
	err := &SchemaLoadError{Path: "x.json", Message: "load", Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load schema x.json: load: bad ref", err.Error())
	assert.Equal(t, "failed to load schema x.json: load", (&SchemaLoadError{Path: "x.json", Message: "load"}).Error())
}
