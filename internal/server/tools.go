package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var animateProperty = map[string]interface{}{
	"type":        "boolean",
	"description": "Animate the change instead of applying it immediately. Default false",
	"default":     false,
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func animateOnly() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"animate": animateProperty,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "editor_load",
			Description: "Load an image into the editor, replacing the current one. Resets rotation, flip and crop and clears undo history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": map[string]interface{}{
						"type":        "string",
						"description": "File path, file:// or http(s):// URL, or data: URI of the image",
					},
				},
				"required": []string{"source"},
			},
		},
		{
			Name:        "editor_state",
			Description: "Get the current rotation, flip, crop, output size and undo/redo availability.",
			InputSchema: noArgs(),
		},

		// Rotation
		{
			Name:        "editor_rotate",
			Description: "Rotate the image by a number of degrees. Positive values rotate clockwise.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"degrees": map[string]interface{}{
						"type":        "number",
						"description": "Degrees to add to the current rotation",
					},
					"animate": animateProperty,
				},
				"required": []string{"degrees"},
			},
		},
		{
			Name:        "editor_rotate_left",
			Description: "Rotate the image 90 degrees counter-clockwise.",
			InputSchema: animateOnly(),
		},
		{
			Name:        "editor_rotate_right",
			Description: "Rotate the image 90 degrees clockwise.",
			InputSchema: animateOnly(),
		},

		// Flip
		{
			Name:        "editor_flip",
			Description: "Toggle mirroring on the selected axes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"horizontal": map[string]interface{}{
						"type":        "boolean",
						"description": "Toggle left-right mirroring",
					},
					"vertical": map[string]interface{}{
						"type":        "boolean",
						"description": "Toggle top-bottom mirroring",
					},
				},
			},
		},
		{
			Name:        "editor_flip_horizontal",
			Description: "Toggle left-right mirroring.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_flip_vertical",
			Description: "Toggle top-bottom mirroring.",
			InputSchema: noArgs(),
		},

		// Geometry
		{
			Name:        "editor_crop",
			Description: "Show only a rectangle of the source image, in source pixel coordinates. Rectangles outside the image are rejected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x":       map[string]interface{}{"type": "number", "description": "Left edge (0-based)"},
					"y":       map[string]interface{}{"type": "number", "description": "Top edge (0-based)"},
					"width":   map[string]interface{}{"type": "number", "description": "Rectangle width"},
					"height":  map[string]interface{}{"type": "number", "description": "Rectangle height"},
					"animate": animateProperty,
				},
				"required": []string{"x", "y", "width", "height"},
			},
		},
		{
			Name:        "editor_resize",
			Description: "Set the output surface size in pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width":  map[string]interface{}{"type": "integer", "description": "Surface width"},
					"height": map[string]interface{}{"type": "integer", "description": "Surface height"},
				},
				"required": []string{"width", "height"},
			},
		},

		// History
		{
			Name:        "editor_undo",
			Description: "Revert the most recent edit.",
			InputSchema: noArgs(),
		},
		{
			Name:        "editor_redo",
			Description: "Re-apply the most recently undone edit.",
			InputSchema: noArgs(),
		},

		// Output
		{
			Name:        "editor_export",
			Description: "Encode the edited image and return it as base64. By default the rendered surface is exported; set full to apply the edits at source resolution instead.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "jpeg", "bmp"},
						"description": "Output format. Default png",
						"default":     "png",
					},
					"quality": map[string]interface{}{
						"type":        "integer",
						"description": "JPEG quality 1-100. Default 92",
					},
					"full": map[string]interface{}{
						"type":        "boolean",
						"description": "Export at source resolution instead of the surface",
						"default":     false,
					},
					"width":  map[string]interface{}{"type": "integer", "description": "Optional output width for full exports"},
					"height": map[string]interface{}{"type": "integer", "description": "Optional output height for full exports"},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
