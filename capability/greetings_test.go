package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetings_ExactOutput(t *testing.T) {
	reg := NewGreetingRegistry()

	tests := []struct {
		capability string
		name       string
		want       string
	}{
		{"hello_english", "Alice", "Hello Alice"},
		{"hello_spanish", "Bob", "Hola Bob"},
		{"hello_mandarin", "Chen", "你好 Chen"},
		{"hello_hebrew", "David", "שלום David"},
		// Formatting is a pure concatenation, whatever the input looks like.
		{"hello_english", "", "Hello "},
		{"hello_english", "O'Brien", "Hello O'Brien"},
		{"hello_spanish", "José", "Hola José"},
		{"hello_mandarin", "李明", "你好 李明"},
		{"hello_hebrew", "שרה", "שלום שרה"},
	}

	for _, tt := range tests {
		t.Run(tt.capability+"/"+tt.name, func(t *testing.T) {
			c, ok := reg.Lookup(tt.capability)
			require.True(t, ok, "capability %s not registered", tt.capability)

			got, err := c.Call(context.Background(), map[string]any{"name": tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGreetings_SchemaAndOrder(t *testing.T) {
	reg := NewGreetingRegistry()

	assert.Equal(t, []string{"hello_english", "hello_mandarin", "hello_spanish", "hello_hebrew"}, reg.Names())

	for _, c := range reg.All() {
		assert.NotEmpty(t, c.Description())

		schema := c.Parameters()
		assert.Equal(t, "object", schema["type"])

		props := schema["properties"].(map[string]any)
		require.Contains(t, props, "name")
		assert.Equal(t, "string", props["name"].(map[string]any)["type"])
		assert.Equal(t, []string{"name"}, schema["required"])
	}
}

func TestGreetings_MissingNameRejected(t *testing.T) {
	reg := NewGreetingRegistry()
	c, _ := reg.Lookup("hello_english")

	_, err := c.Call(context.Background(), map[string]any{})
	require.Error(t, err)

	var capErr *Error
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "VALIDATION_ERROR", capErr.Code)
	assert.Equal(t, "hello_english", capErr.Capability)
}
