package util

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateSchema(t *testing.T) {
	type params struct {
		Name   string `json:"name" description:"Name of the person to greet"`
		Count  int    `json:"count,omitempty"`
		Hidden string `json:"-"`
	}

	schema := CreateSchema(params{})

	assert.Equal(t, "object", schema["type"])

	props := schema["properties"].(map[string]any)
	assert.Equal(t, "string", props["name"].(map[string]any)["type"])
	assert.Equal(t, "Name of the person to greet", props["name"].(map[string]any)["description"])
	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
	assert.NotContains(t, props, "Hidden")

	assert.Equal(t, []string{"name"}, schema["required"])
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}

	tests := []struct {
		name    string
		params  map[string]any
		wantErr bool
	}{
		{"valid", map[string]any{"name": "Alice"}, false},
		{"missing required", map[string]any{}, true},
		{"wrong type", map[string]any{"name": 42}, true},
		{"extra field allowed", map[string]any{"name": "Bob", "lang": "es"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParameters(tt.params, schema)
			if tt.wantErr {
				assert.Error(t, err)
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateParametersRequiredFromJSON(t *testing.T) {
	// Schemas decoded from JSON carry required as []any.
	raw := `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`

	var schema map[string]any
	assert.NoError(t, json.Unmarshal([]byte(raw), &schema))

	err := ValidateParameters(map[string]any{}, schema)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}
