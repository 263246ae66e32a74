package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the frame image (PNG, JPEG or GIF)",
	}
}

func horizontalResProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Horizontal resolution whose half is the frame midline. Defaults to the configured horizontal_res.",
	}
}

func colorProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description + "; \"#RRGGBB\" or \"#RRGGBBAA\", invalid values use the default",
	}
}

// frameSchema is the schema of tools that take only a frame path and an optional
// horizontal resolution.
func frameSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path":           pathProperty(),
			"horizontal_res": horizontalResProperty(),
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Frame information
		{
			Name:        "image_load",
			Description: "Load a frame and return its dimensions, format and the size the detector works on after downsampling.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of a frame.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Detection
		{
			Name:        "tape_process_frame",
			Description: "Run the full tape detector on a frame: threshold, contours, filter, sequence and pair. Returns every sequenced target and the selected pair with its offset from the frame midline. Frames where no pair can be formed return the report with an error field instead of failing.",
			InputSchema: frameSchema(),
		},
		{
			Name:        "tape_threshold_mask",
			Description: "Return the binary HSV threshold mask of a frame as base64 PNG, after the configured downsample, blur and morphological cleanup.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tape_list_targets",
			Description: "List the targets that passed the contour filter, left to right, together with the reason each rejected contour failed.",
			InputSchema: frameSchema(),
		},
		{
			Name:        "tape_crop_target",
			Description: "Crop one target's buffered source region out of the detector frame and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":           pathProperty(),
					"horizontal_res": horizontalResProperty(),
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Target index as listed by tape_list_targets",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Resize factor for the crop (default 1.0)",
					},
				},
				"required": []string{"path", "index"},
			},
		},
		{
			Name:        "tape_sample_hsv",
			Description: "Sample pixels of the detector frame in OpenCV HSV scale (H 0-180, S/V 0-255) and report whether the configured threshold accepts them. With a region, also returns min, max and median HSV over it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region {x1, y1, x2, y2}, x2/y2 exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tape_annotate",
			Description: "Return the detector frame with a ring on every target center, a line joining the selected pair and a ring on the pair center, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":           pathProperty(),
					"horizontal_res": horizontalResProperty(),
					"label": map[string]interface{}{
						"type":        "boolean",
						"description": "Number each target ring (default false)",
					},
					"target_color": colorProperty("Target ring color (default #0000FF)"),
					"pair_color":   colorProperty("Pair center ring color (default #FF0000)"),
					"line_color":   colorProperty("Color of the line joining the pair (default #00FFFF)"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "tape_plot_centers",
			Description: "Scatter plot of target centers by direction with the pair center and frame midline. Writes to output when given, otherwise returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":           pathProperty(),
					"horizontal_res": horizontalResProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional output file; the extension picks the format (png, svg, pdf)",
					},
				},
				"required": []string{"path"},
			},
		},

		// Configuration
		{
			Name:        "tape_get_config",
			Description: "Return the detector configuration in effect.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}
