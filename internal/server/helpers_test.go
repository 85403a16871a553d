package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/ironsheep/lane-vision/internal/detection"
	"github.com/ironsheep/lane-vision/internal/logger"
)

func newTestServer() *Server {
	store := detection.NewThresholdStore(detection.DefaultThresholds(), logger.NewNop())
	return New(detection.DefaultConfig(), store, logger.NewNop())
}

// ballImage returns a 360x240 black frame with a 5x5 white patch centered at (cx, cy).
func ballImage(cx, cy int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 360, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 360; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= cx-2 && x <= cx+2 && y >= cy-2 && y <= cy+2 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return buf.Bytes()
}

// createTestImageFile writes img to a temp PNG and returns its path
func createTestImageFile(t *testing.T, img image.Image) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "frame-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.Write(encodePNG(t, img)); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return tmpFile.Name()
}

func base64Frame(t *testing.T, img image.Image) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(encodePNG(t, img))
}

func toolCallRequest(t *testing.T, id interface{}, name string, args interface{}) *MCPRequest {
	t.Helper()
	params := map[string]interface{}{"name": name}
	if args != nil {
		params["arguments"] = args
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	return &MCPRequest{
		JSONRPC: "2.0",
		ID:      id,
		Method:  "tools/call",
		Params:  paramsJSON,
	}
}

// toolText extracts the JSON text payload of a successful tools/call response.
func toolText(t *testing.T, resp *MCPResponse) string {
	t.Helper()
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content text should be a string")
	}
	return text
}
