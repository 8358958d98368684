package cmd

import (
	"net/http"
	"testing"

	"github.com/emeritus-labs/emeritus-bridge/internal/handler"
	"github.com/stretchr/testify/assert"
)

func TestBuildTool(t *testing.T) {
	op := handler.Operation{
		Name:        "create_user",
		Description: "Create a new user by mobile number or email",
		Method:      http.MethodPost,
		Path:        "/api/v5/entity/user/create",
		Inputs: []handler.Input{
			{Name: "mobile", Type: handler.TypeString, Description: "User's mobile number"},
			{Name: "email", Type: handler.TypeString, Description: "User's email address"},
			{Name: "limit", Type: handler.TypeInteger, Description: "A number"},
			{Name: "dry_run", Type: handler.TypeBoolean, Description: "A flag"},
			{Name: "leads_data", Type: handler.TypeArray, Description: "A batch", Required: true},
		},
	}

	tool := buildTool(op)

	assert.Equal(t, "create_user", tool.Name)
	assert.Equal(t, op.Description, tool.Description)
	assert.ElementsMatch(t, []string{"leads_data"}, tool.InputSchema.Required)

	for _, input := range op.Inputs {
		assert.Contains(t, tool.InputSchema.Properties, input.Name)
	}
	assertPropertyType(t, tool.InputSchema.Properties, "mobile", "string")
	assertPropertyType(t, tool.InputSchema.Properties, "limit", "number")
	assertPropertyType(t, tool.InputSchema.Properties, "dry_run", "boolean")
	assertPropertyType(t, tool.InputSchema.Properties, "leads_data", "array")
}

func assertPropertyType(t *testing.T, properties map[string]any, name, expected string) {
	t.Helper()
	prop, ok := properties[name].(map[string]any)
	if assert.True(t, ok, "property %s is not an object", name) {
		assert.Equal(t, expected, prop["type"])
	}
}
