package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findTool(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	require.NotEmpty(t, tools)

	expectedTools := []string{
		"editor_load",
		"editor_state",
		"editor_rotate",
		"editor_rotate_left",
		"editor_rotate_right",
		"editor_flip",
		"editor_flip_horizontal",
		"editor_flip_vertical",
		"editor_crop",
		"editor_resize",
		"editor_undo",
		"editor_redo",
		"editor_export",
	}

	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, expectedTools, names)
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Name)
			assert.NotEmpty(t, tool.Description)
			require.NotNil(t, tool.InputSchema)
			assert.Equal(t, "object", tool.InputSchema["type"])

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			require.True(t, ok, "InputSchema properties should be a map")

			// Every required parameter must be described
			if required, ok := tool.InputSchema["required"]; ok {
				requiredList, ok := required.([]string)
				require.True(t, ok, "'required' should be a string slice")
				for _, r := range requiredList {
					assert.Contains(t, props, r, "required parameter has no property")
				}
			}
		})
	}
}

func TestToolDefinitions_CropCoordinates(t *testing.T) {
	cropTool := findTool(t, "editor_crop")

	required, ok := cropTool.InputSchema["required"].([]string)
	require.True(t, ok, "required should be a string slice")
	assert.Subset(t, required, []string{"x", "y", "width", "height"})
}

func TestToolDefinitions_ExportFormats(t *testing.T) {
	exportTool := findTool(t, "editor_export")

	props := exportTool.InputSchema["properties"].(map[string]interface{})
	format, ok := props["format"].(map[string]interface{})
	require.True(t, ok, "format property missing")
	enum, ok := format["enum"].([]string)
	require.True(t, ok, "format enum should be a string slice")
	assert.ElementsMatch(t, []string{"png", "jpeg", "bmp"}, enum)
}
