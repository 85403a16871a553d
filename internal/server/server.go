package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ironsheep/lane-vision/internal/detection"
	"github.com/ironsheep/lane-vision/internal/imaging"
	"github.com/ironsheep/lane-vision/internal/logger"
)

// ImageDataMethod is the notification carrying each cycle's record.
const ImageDataMethod = "notifications/image_data"

// Server handles MCP protocol communication
type Server struct {
	cache    *imaging.ImageCache
	detector *detection.Detector
	store    *detection.ThresholdStore
	logger   logger.Logger

	mu  sync.Mutex
	out *json.Encoder
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a server whose detector publishes through the server itself.
func New(cfg detection.Config, store *detection.ThresholdStore, log logger.Logger, opts ...detection.Option) *Server {
	s := &Server{
		cache:  imaging.NewImageCache(),
		store:  store,
		logger: log,
	}
	opts = append(opts, detection.WithPublisher(s))
	s.detector = detection.NewDetector(cfg, store, log, opts...)
	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from in and writes responses
// and notifications to out until in is exhausted.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	s.mu.Lock()
	s.out = json.NewEncoder(out)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.out = nil
		s.mu.Unlock()
	}()

	scanner := bufio.NewScanner(in)
	// Inline frames arrive base64 encoded and can be large
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Error("server", fmt.Errorf("failed to parse request: %w", err), nil)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := s.write(resp); err != nil {
				s.logger.Error("server", fmt.Errorf("failed to encode response: %w", err), map[string]interface{}{
					"method": req.Method,
				})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// Publish sends a cycle's record as a notification. It is a no-op when no
// stream is being served.
func (s *Server) Publish(data detection.ImageData) error {
	return s.write(MCPNotification{
		JSONRPC: "2.0",
		Method:  ImageDataMethod,
		Params:  data,
	})
}

func (s *Server) write(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == nil {
		return nil
	}
	return s.out.Encode(v)
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "lane-vision",
				"version": "0.1.0",
			},
		},
	}
}
