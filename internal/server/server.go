package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// ServerName and ServerVersion are reported in the initialize handshake.
var (
	ServerName    = "hsv-detect"
	ServerVersion = "dev"
)

const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"

	// Largest request line accepted on stdin.
	maxRequestBytes = 1024 * 1024
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server answers MCP requests against image files using the same detector
// settings as the camera loop.
type Server struct {
	cache  *imaging.ImageCache
	opts   pipeline.Options
	bounds imaging.ThresholdBounds
	log    zerolog.Logger
}

// MCPRequest is one JSON-RPC request or notification. Notifications carry no
// ID and get no response.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse is a JSON-RPC response. Exactly one of Result and Error is set.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the error member of a response.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server. opts configures every detect_objects call, and
// bounds is used by tools whose caller omits them.
func New(opts pipeline.Options, bounds imaging.ThresholdBounds) *Server {
	return &Server{
		cache:  imaging.NewImageCache(),
		opts:   opts,
		bounds: bounds,
		log:    log.With().Str("component", "mcp").Logger(),
	}
}

// Run serves MCP over stdin and stdout until stdin closes.
func (s *Server) Run() error {
	s.log.Info().Str("bounds", s.bounds.String()).Msg("serving on stdio")
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from r and writes one response
// per line to w. A line that is not valid JSON gets a parse error response
// with a null ID.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("unparseable request")
			resp = errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.dispatch(&req)
		}

		if resp == nil {
			continue
		}
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// dispatch handles one request and logs its outcome.
func (s *Server) dispatch(req *MCPRequest) *MCPResponse {
	start := time.Now()
	resp := s.handleRequest(req)

	ev := s.log.Debug()
	if resp != nil && resp.Error != nil {
		ev = s.log.Warn().Int("code", resp.Error.Code).Interface("detail", resp.Error.Data)
	}
	ev.Str("method", req.Method).
		Interface("id", req.ID).
		Dur("elapsed", time.Since(start)).
		Msg("request")
	return resp
}

// handleRequest routes a request by method.
//
// Notifications, which carry no ID, never get a reply.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	if req.ID == nil {
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return resultResponse(req.ID, map[string]interface{}{})
	}
	return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
}

// handleInitialize answers the handshake. The instructions tell the client
// which bounds apply when a tool call omits them.
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return resultResponse(req.ID, map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    ServerName,
			"version": ServerVersion,
		},
		"instructions": fmt.Sprintf("Hue uses the 0-179 scale. Default bounds: %s.", s.bounds),
	})
}

func resultResponse(id, result interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: jsonrpcVersion, ID: id, Result: result}
}

func errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Error:   &MCPError{Code: code, Message: message, Data: data},
	}
}
