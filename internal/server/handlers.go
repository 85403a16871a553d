package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/lane-vision/internal/detection"
	"github.com/ironsheep/lane-vision/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "vision_process_frame").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "vision_process_frame":
		return s.handleProcessFrame(args)
	case "vision_adjust_thresholds":
		return s.handleAdjustThresholds(args)
	case "vision_get_thresholds":
		return s.store.Snapshot(), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type processFrameArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

var errFrameSource = errors.New("provide exactly one of path or image_base64")

// handleProcessFrame runs one detection cycle. The record is published as a
// notification by the detector and also returned as the tool result.
func (s *Server) handleProcessFrame(args json.RawMessage) (interface{}, error) {
	var a processFrameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		img image.Image
		err error
	)
	switch {
	case a.Path != "" && a.ImageBase64 == "":
		img, err = s.cache.Load(a.Path)
	case a.ImageBase64 != "" && a.Path == "":
		img, err = imaging.DecodeBase64(a.ImageBase64)
	default:
		return nil, errFrameSource
	}
	if err != nil {
		return nil, err
	}

	cycle := s.detector.Process(img)
	return cycle.Result.ImageData(), nil
}

type adjustThresholdsArgs struct {
	LowerAdjustment int `json:"lower_adjustment"`
	RedAdjustment   int `json:"red_adjustment"`
}

func (s *Server) handleAdjustThresholds(args json.RawMessage) (interface{}, error) {
	var a adjustThresholdsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.store.Adjust(a.LowerAdjustment, a.RedAdjustment), nil
}

// Detector exposes the detector driven by this server.
func (s *Server) Detector() *detection.Detector {
	return s.detector
}
