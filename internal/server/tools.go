package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func propDefault(typ, description string, def interface{}) map[string]interface{} {
	p := prop(typ, description)
	p["default"] = def
	return p
}

// sampleFileProps are the arguments shared by tools that inspect a saved
// sample.
func sampleFileProps() map[string]interface{} {
	return map[string]interface{}{
		"image_path":  prop("string", "Absolute path to the rendered PNG"),
		"labels_path": prop("string", "Absolute path to the sample's JSON label file"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	cropProps := sampleFileProps()
	cropProps["index"] = prop("integer", "Index of the shape in the label file (0-based)")
	cropProps["padding"] = propDefault("integer", "Extra pixels around the bounding box", 0)
	cropProps["scale"] = propDefault("number", "Resize factor applied after cropping", 1.0)

	return []Tool{
		// Generation
		{
			Name: "shapes_generate",
			Description: "Generate one image of random non-overlapping shapes (rectangles, circles, triangles and optionally ellipses) " +
				"on a white background, with a label (category and bounding box) per shape. Returns the label record and, by default, the image as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rows":           propDefault("integer", "Image height in pixels", 128),
					"cols":           propDefault("integer", "Image width in pixels", 128),
					"min_shapes":     propDefault("integer", "Minimum number of shape slots", 1),
					"max_shapes":     propDefault("integer", "Maximum number of shape slots", 5),
					"min_size":       propDefault("integer", "Minimum shape dimension in pixels", 2),
					"max_size":       prop("integer", "Maximum shape dimension in pixels. Default is the larger image side"),
					"multichannel":   propDefault("boolean", "Color image; false renders grayscale", true),
					"channels":       propDefault("integer", "Channels per pixel when multichannel", 3),
					"shape":          prop("string", "Pin every shape to one category: rectangle, circle, triangle or ellipse"),
					"scenario":       propDefault("string", "Category mix: all-halo, all-core, rectangle-triangle, circle or ellipse", "all-halo"),
					"allow_overlap":  propDefault("boolean", "Let shapes overlap", false),
					"trials":         propDefault("integer", "Placement attempts per shape", 100),
					"seed":           prop("integer", "Seed for a reproducible image; omitted draws one and reports it"),
					"enable_ellipse": propDefault("boolean", "Register the ellipse category", false),
					"intensity_ranges": map[string]interface{}{
						"type":        "array",
						"description": "One {low, high} range for all channels or one per channel, each within 0-255",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"low":  prop("integer", "Lowest intensity"),
								"high": prop("integer", "Highest intensity"),
							},
						},
					},
					"distribution": map[string]interface{}{
						"type":        "object",
						"description": "Custom category weights, overriding the scenario",
						"properties": map[string]interface{}{
							"categories": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
							"weights":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
						},
					},
					"include_image":   propDefault("boolean", "Return the image as base64 PNG", true),
					"include_preview": propDefault("boolean", "Return a preview with bounding boxes drawn", false),
					"overlay_color":   propDefault("string", "Preview box color as #RRGGBB", "#FF0000"),
					"image_path":      prop("string", "Also save the image as PNG at this path"),
					"labels_path":     prop("string", "Also save the label record as JSON at this path"),
				},
			},
		},
		{
			Name:        "shapes_list_scenarios",
			Description: "List the built-in category scenarios with their normalized probabilities, and every registered category.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Inspection
		{
			Name:        "shapes_audit",
			Description: "Check a saved sample against its label file: every labeled shape must have visible pixels of its color inside its box, and no unlabeled region may remain.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sampleFileProps(),
				"required":   []string{"image_path", "labels_path"},
			},
		},
		{
			Name:        "shapes_crop",
			Description: "Crop one labeled shape out of a saved sample and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": cropProps,
				"required":   []string{"image_path", "labels_path", "index"},
			},
		},
		{
			Name:        "shapes_sample_color",
			Description: "Get the color at a pixel of a saved image in hex, RGB, RGBA and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": prop("string", "Absolute path to the image"),
					"x":          prop("integer", "Column (0-based)"),
					"y":          prop("integer", "Row (0-based)"),
				},
				"required": []string{"image_path", "x", "y"},
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
