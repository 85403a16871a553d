// Package server implements the MCP (Model Context Protocol) server for the
// lane vision detector.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - vision_process_frame: Run one detection cycle on a frame
//   - vision_adjust_thresholds: Nudge the white and red lower thresholds
//   - vision_get_thresholds: Read the current thresholds
//
// Every processed frame also emits a notifications/image_data notification
// with params {"ball_position": N, "corner_position": N}. Notifications and
// responses share one encoder and never interleave.
//
// # Image Caching
//
// Frames given by path are decoded once and cached for the lifetime of the
// server process. Inline base64 frames are never cached.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	store := detection.NewThresholdStore(detection.DefaultThresholds(), log)
//	srv := server.New(detection.DefaultConfig(), store, log)
//	if err := srv.Run(); err != nil {
//	    log.Error("main", err, nil)
//	}
package server
