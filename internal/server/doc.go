// Package server implements an MCP (Model Context Protocol) server that
// exposes the HSV detector on image files.
//
// It is the offline companion to the camera loop: sample pixels from a
// reference photo, preview a cleaned threshold mask, then run the same
// detector the live loop runs and read back the measurements as JSON.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - hsv_sample: RGB and 8-bit HSV of one pixel, optionally tested against bounds
//   - hsv_threshold_mask: Coverage of the raw and cleaned mask, plus the mask as PNG
//   - detect_objects: Polygons, bounding boxes and enclosing circles per contour
//
// Tools that take bounds fall back to the bounds the server was created with.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime
// of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
