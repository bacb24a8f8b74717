package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/hsv-detect/internal/detection"
	"github.com/ironsheep/hsv-detect/internal/imaging"
	"github.com/ironsheep/hsv-detect/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "detect_objects").
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
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return resultResponse(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(result),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "hsv_sample":
		return s.handleHSVSample(args)
	case "hsv_threshold_mask":
		return s.handleThresholdMask(args)
	case "detect_objects":
		return s.handleDetectObjects(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// resolveBounds returns b when the caller sent bounds, otherwise the
// server's configured bounds. Out-of-range values are rejected.
func (s *Server) resolveBounds(b *imaging.ThresholdBounds) (imaging.ThresholdBounds, error) {
	if b == nil {
		return s.bounds, nil
	}
	if err := b.Validate(); err != nil {
		return imaging.ThresholdBounds{}, fmt.Errorf("invalid bounds: %w", err)
	}
	return *b, nil
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === HSV Handlers ===

type hsvSampleArgs struct {
	Path   string                   `json:"path"`
	X      int                      `json:"x"`
	Y      int                      `json:"y"`
	Bounds *imaging.ThresholdBounds `json:"bounds"`
}

type hsvSampleResult struct {
	*imaging.HSVSample
	Bounds  string `json:"bounds,omitempty"`
	InRange *bool  `json:"in_range,omitempty"`
}

func (s *Server) handleHSVSample(args json.RawMessage) (interface{}, error) {
	var a hsvSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	sample, err := imaging.SampleHSV(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}

	res := &hsvSampleResult{HSVSample: sample}
	if a.Bounds != nil {
		b, err := s.resolveBounds(a.Bounds)
		if err != nil {
			return nil, err
		}
		in := b.Contains(sample.HSV)
		res.Bounds = b.String()
		res.InRange = &in
	}
	return res, nil
}

type thresholdMaskArgs struct {
	Path         string                   `json:"path"`
	Bounds       *imaging.ThresholdBounds `json:"bounds"`
	IncludeImage *bool                    `json:"include_image"`
}

type thresholdMaskResult struct {
	Bounds          string                `json:"bounds"`
	Width           int                   `json:"width"`
	Height          int                   `json:"height"`
	RawCoverage     float64               `json:"raw_coverage_percent"`
	CleanedCoverage float64               `json:"cleaned_coverage_percent"`
	Mask            *imaging.EncodedImage `json:"mask,omitempty"`
}

func (s *Server) handleThresholdMask(args json.RawMessage) (interface{}, error) {
	var a thresholdMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.resolveBounds(a.Bounds)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	raw := imaging.InRange(img, b)
	cleaned := imaging.Cleanup(raw)

	res := &thresholdMaskResult{
		Bounds:          b.String(),
		Width:           raw.Bounds().Dx(),
		Height:          raw.Bounds().Dy(),
		RawCoverage:     imaging.Coverage(raw),
		CleanedCoverage: imaging.Coverage(cleaned),
	}
	if a.IncludeImage == nil || *a.IncludeImage {
		if res.Mask, err = imaging.EncodePNG(cleaned); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type detectObjectsArgs struct {
	Path          string                   `json:"path"`
	Bounds        *imaging.ThresholdBounds `json:"bounds"`
	Width         int                      `json:"width"`
	Height        int                      `json:"height"`
	IncludeImages bool                     `json:"include_images"`
}

type detectObjectsResult struct {
	Bounds    string                `json:"bounds"`
	Width     int                   `json:"width"`
	Height    int                   `json:"height"`
	Count     int                   `json:"count"`
	Labeled   int                   `json:"labeled"`
	Objects   []pipeline.Object     `json:"objects"`
	Hierarchy []detection.Hierarchy `json:"hierarchy"`
	Annotated *imaging.EncodedImage `json:"annotated,omitempty"`
	Processed *imaging.EncodedImage `json:"processed,omitempty"`
}

func (s *Server) handleDetectObjects(args json.RawMessage) (interface{}, error) {
	var a detectObjectsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.resolveBounds(a.Bounds)
	if err != nil {
		return nil, err
	}
	img, err := imaging.LoadFrame(s.cache, a.Path, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	// Each call starts the outline color sequence from the default seed.
	res, err := pipeline.NewProcessor(s.opts, nil).Process(img, &b)
	if err != nil {
		return nil, err
	}

	out := &detectObjectsResult{
		Bounds:    b.String(),
		Width:     res.Annotated.Bounds().Dx(),
		Height:    res.Annotated.Bounds().Dy(),
		Count:     len(res.Objects),
		Labeled:   len(res.Labeled()),
		Objects:   res.Objects,
		Hierarchy: res.Hierarchy,
	}
	if out.Objects == nil {
		out.Objects = []pipeline.Object{}
	}
	if a.IncludeImages {
		if out.Annotated, err = imaging.EncodePNG(res.Annotated); err != nil {
			return nil, err
		}
		if out.Processed, err = imaging.EncodePNG(res.MaskView); err != nil {
			return nil, err
		}
	}
	return out, nil
}
