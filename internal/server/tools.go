package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "vision_process_frame",
			Description: "Run one detection cycle on a camera frame. Returns ball_position (ball column minus frame center, -180 when no ball) " +
				"and corner_position (red boundary offset, 2147483647 when no edge). When a ball is found the edge scan is not awaited, so corner_position " +
				"may be 2147483647 even if the scan later finds an edge. The same record is published as a notifications/image_data notification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG or GIF frame. Decoded frames are cached by path.",
					},
					"image_base64": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded PNG, JPEG or GIF frame. Use instead of path.",
					},
				},
			},
		},
		{
			Name:        "vision_adjust_thresholds",
			Description: "Adjust the white and red lower thresholds by signed deltas. A delta that would move a threshold outside 0-255 is ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"lower_adjustment": map[string]interface{}{
						"type":        "integer",
						"description": "Delta for the white luma lower bound",
						"default":     0,
					},
					"red_adjustment": map[string]interface{}{
						"type":        "integer",
						"description": "Delta for the red value floor",
						"default":     0,
					},
				},
			},
		},
		{
			Name:        "vision_get_thresholds",
			Description: "Return the current white and red lower thresholds.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
