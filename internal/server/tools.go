package server

import "github.com/ironsheep/hsv-detect/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func boundProperty(desc string, max int) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": desc,
		"minimum":     0,
		"maximum":     max,
	}
}

// boundsProperty describes the six inclusive HSV limits. Omitted bounds
// fall back to the server's configured bounds.
func boundsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Inclusive HSV limits (H 0-179, S and V 0-255). Defaults to the configured bounds.",
		"properties": map[string]interface{}{
			"low_h":  boundProperty("Lower hue", imaging.MaxHue),
			"high_h": boundProperty("Upper hue", imaging.MaxHue),
			"low_s":  boundProperty("Lower saturation", imaging.MaxSaturation),
			"high_s": boundProperty("Upper saturation", imaging.MaxSaturation),
			"low_v":  boundProperty("Lower value", imaging.MaxValue),
			"high_v": boundProperty("Upper value", imaging.MaxValue),
		},
		"required": []string{"low_h", "high_h", "low_s", "high_s", "low_v", "high_v"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hsv_sample",
			Description: "Read the pixel at (x, y) and return its RGB value and its HSV value on the detector's 8-bit scale. When bounds are given, also report whether the pixel passes them. Use this to pick threshold values.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0 = left edge)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0 = top edge)",
					},
					"bounds": boundsProperty(),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "hsv_threshold_mask",
			Description: "Threshold an image against HSV bounds and clean the mask (erode, dilate, dilate, erode). Returns the percentage of pixels that passed and, optionally, the cleaned mask as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"bounds": boundsProperty(),
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the cleaned mask as base64 PNG. Default true",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "detect_objects",
			Description: "Run the full detector on an image: threshold, cleanup, contour extraction, then per contour a simplified polygon, bounding box and minimal enclosing circle. Optionally returns the annotated frame and the processed mask view as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"bounds": boundsProperty(),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Resize the image to this width before detection (requires height). Default: keep size",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Resize the image to this height before detection (requires width). Default: keep size",
					},
					"include_images": map[string]interface{}{
						"type":        "boolean",
						"description": "Include annotated and processed images as base64 PNG. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return resultResponse(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
