package server

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/lane-vision/internal/detection"
)

func decodeImageData(t *testing.T, resp *MCPResponse) detection.ImageData {
	t.Helper()
	var data detection.ImageData
	if err := json.Unmarshal([]byte(toolText(t, resp)), &data); err != nil {
		t.Fatalf("failed to decode tool result: %v", err)
	}
	return data
}

func TestHandleToolsCall_ProcessFrame_Path(t *testing.T) {
	s := newTestServer()
	path := createTestImageFile(t, ballImage(200, 150))

	resp := s.handleRequest(toolCallRequest(t, 1, "vision_process_frame", map[string]interface{}{
		"path": path,
	}))

	data := decodeImageData(t, resp)
	if data.BallPosition != 18 {
		t.Errorf("ball_position: got %d, want 18", data.BallPosition)
	}
	if data.CornerPosition != detection.NoEdgeFound {
		t.Errorf("corner_position: got %d, want %d", data.CornerPosition, detection.NoEdgeFound)
	}
	if s.cache.Len() != 1 {
		t.Errorf("cache size: got %d, want 1", s.cache.Len())
	}
}

func TestHandleToolsCall_ProcessFrame_Base64(t *testing.T) {
	s := newTestServer()
	black := image.NewRGBA(image.Rect(0, 0, 360, 240))
	for i := 3; i < len(black.Pix); i += 4 {
		black.Pix[i] = 255
	}

	resp := s.handleRequest(toolCallRequest(t, 1, "vision_process_frame", map[string]interface{}{
		"image_base64": base64Frame(t, black),
	}))

	data := decodeImageData(t, resp)
	if data.BallPosition != detection.NoBallFound {
		t.Errorf("ball_position: got %d, want %d", data.BallPosition, detection.NoBallFound)
	}
	if s.cache.Len() != 0 {
		t.Errorf("inline frames should not be cached, cache size %d", s.cache.Len())
	}
}

func TestHandleToolsCall_ProcessFrame_RedEdge(t *testing.T) {
	s := newTestServer()
	img := ballImage(-10, -10)
	// Red stripe inside the left strip at columns 10..14, rows 100..199
	for y := 100; y < 200; y++ {
		for x := 10; x < 15; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	resp := s.handleRequest(toolCallRequest(t, 1, "vision_process_frame", map[string]interface{}{
		"image_base64": base64Frame(t, img),
	}))

	data := decodeImageData(t, resp)
	if data.BallPosition != detection.NoBallFound {
		t.Errorf("ball_position: got %d, want %d", data.BallPosition, detection.NoBallFound)
	}
	// No ball means the edge scan is awaited; the first hot column is 10
	if data.CornerPosition != 360-10-180 {
		t.Errorf("corner_position: got %d, want %d", data.CornerPosition, 360-10-180)
	}
}

func TestHandleToolsCall_ProcessFrame_SourceErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"neither", map[string]interface{}{}},
		{"both", map[string]interface{}{"path": "/tmp/x.png", "image_base64": "AAAA"}},
		{"missing file", map[string]interface{}{"path": "/nonexistent/frame.png"}},
		{"bad base64", map[string]interface{}{"image_base64": "!!not base64!!"}},
		{"not an image", map[string]interface{}{"image_base64": "aGVsbG8="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			resp := s.handleRequest(toolCallRequest(t, 1, "vision_process_frame", tt.args))
			if resp == nil {
				t.Fatal("handleRequest returned nil")
			}
			if resp.Error == nil {
				t.Fatal("Expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
		})
	}
}

func TestHandleToolsCall_AdjustThresholds(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(toolCallRequest(t, 1, "vision_adjust_thresholds", map[string]interface{}{
		"lower_adjustment": -30,
		"red_adjustment":   100,
	}))

	var got detection.Thresholds
	if err := json.Unmarshal([]byte(toolText(t, resp)), &got); err != nil {
		t.Fatalf("failed to decode thresholds: %v", err)
	}
	// 195+100 leaves the byte range and is ignored
	want := detection.Thresholds{Lower: 150, Red: 195}
	if got != want {
		t.Errorf("thresholds: got %+v, want %+v", got, want)
	}
	if s.store.Snapshot() != want {
		t.Errorf("store: got %+v, want %+v", s.store.Snapshot(), want)
	}
}

func TestHandleToolsCall_GetThresholds(t *testing.T) {
	s := newTestServer()
	s.store.Adjust(5, -5)

	resp := s.handleRequest(toolCallRequest(t, "get", "vision_get_thresholds", nil))

	var got detection.Thresholds
	if err := json.Unmarshal([]byte(toolText(t, resp)), &got); err != nil {
		t.Fatalf("failed to decode thresholds: %v", err)
	}
	want := detection.Thresholds{Lower: 185, Red: 190}
	if got != want {
		t.Errorf("thresholds: got %+v, want %+v", got, want)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(toolCallRequest(t, 1, "nonexistent_tool", map[string]interface{}{}))

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_MissingArguments(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(toolCallRequest(t, 1, "vision_adjust_thresholds", nil))

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for missing arguments")
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer()
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error == nil {
		t.Fatal("Expected error for invalid params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := newTestServer()
	for _, name := range []string{"vision_process_frame", "vision_adjust_thresholds"} {
		if _, err := s.executeTool(name, json.RawMessage(`{invalid`)); err == nil {
			t.Errorf("%s: expected error for invalid JSON", name)
		}
	}
}
