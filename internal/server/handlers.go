package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"github.com/ironsheep/tapevision/internal/diagplot"
	"github.com/ironsheep/tapevision/internal/imaging"
	"github.com/ironsheep/tapevision/internal/vision"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "tape_process_frame").
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
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	// Frame information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Detection
	case "tape_process_frame":
		return s.handleProcessFrame(args)
	case "tape_threshold_mask":
		return s.handleThresholdMask(args)
	case "tape_list_targets":
		return s.handleListTargets(args)
	case "tape_crop_target":
		return s.handleCropTarget(args)
	case "tape_sample_hsv":
		return s.handleSampleHSV(args)
	case "tape_annotate":
		return s.handleAnnotate(args)
	case "tape_plot_centers":
		return s.handlePlotCenters(args)

	// Configuration
	case "tape_get_config":
		return s.pipeline.Config(), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Frame Information Handlers ===

type frameArgs struct {
	Path          string  `json:"path"`
	HorizontalRes float64 `json:"horizontal_res"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadFrameInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Detection Handlers ===

// detect runs the pipeline over a cached frame. Per-frame detection failures are
// returned as detectErr with a usable result; anything else is a tool failure.
func (s *Server) detect(a frameArgs) (res *vision.Result, detectErr error, err error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	hres := a.HorizontalRes
	if hres <= 0 {
		hres = s.pipeline.Config().HorizontalRes
	}
	res, detectErr = s.pipeline.Process(img, hres)
	if detectErr != nil && !vision.IsFrameSkippable(detectErr) {
		return nil, nil, detectErr
	}
	return res, detectErr, nil
}

func (s *Server) handleProcessFrame(args json.RawMessage) (interface{}, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, detectErr, err := s.detect(a)
	if err != nil {
		return nil, err
	}
	return res.Report(detectErr), nil
}

type maskResult struct {
	ForegroundPixels int `json:"foreground_pixels"`
	imaging.EncodedImage
}

func (s *Server) handleThresholdMask(args json.RawMessage) (interface{}, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	mask := s.pipeline.Mask(s.pipeline.Prepare(img))
	n := 0
	for _, v := range mask.Pix {
		if v != 0 {
			n++
		}
	}
	enc, err := imaging.EncodePNG(mask)
	if err != nil {
		return nil, err
	}
	return &maskResult{ForegroundPixels: n, EncodedImage: *enc}, nil
}

type targetList struct {
	ContourCount int                   `json:"contour_count"`
	Targets      []vision.TargetReport `json:"targets"`
	Rejections   []vision.Rejection    `json:"rejections,omitempty"`
}

func (s *Server) handleListTargets(args json.RawMessage) (interface{}, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, _, err := s.detect(a)
	if err != nil {
		return nil, err
	}
	targets := vision.SortByXCenter(res.Targets)
	out := &targetList{
		ContourCount: len(res.Contours),
		Targets:      make([]vision.TargetReport, len(targets)),
		Rejections:   res.Rejections,
	}
	for i, t := range targets {
		out.Targets[i] = vision.NewTargetReport(t)
	}
	return out, nil
}

type cropTargetArgs struct {
	frameArgs
	Index int     `json:"index"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleCropTarget(args json.RawMessage) (interface{}, error) {
	var a cropTargetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	res, _, err := s.detect(a.frameArgs)
	if err != nil {
		return nil, err
	}
	targets := vision.SortByXCenter(res.Targets)
	if a.Index < 0 || a.Index >= len(targets) {
		return nil, fmt.Errorf("target index %d out of range (%d targets)", a.Index, len(targets))
	}
	return imaging.CropTarget(res.Frame, targets[a.Index].Region(), a.Scale)
}

type sampleHSVArgs struct {
	Path   string                 `json:"path"`
	Points []imaging.LabeledPoint `json:"points"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region"`
}

type sampleHSVResult struct {
	Samples []imaging.HSVSample `json:"samples"`
	Region  *imaging.HSVStats   `json:"region,omitempty"`
}

func (s *Server) handleSampleHSV(args json.RawMessage) (interface{}, error) {
	var a sampleHSVArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	frame := s.pipeline.Prepare(img)
	hsv := s.pipeline.Config().HSV

	samples, err := imaging.SampleHSV(frame, a.Points, hsv)
	if err != nil {
		return nil, err
	}
	out := &sampleHSVResult{Samples: samples}
	if a.Region != nil {
		r := image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2)
		if out.Region, err = imaging.RegionHSV(frame, r, hsv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type annotateArgs struct {
	frameArgs
	Label       bool   `json:"label"`
	TargetColor string `json:"target_color"`
	PairColor   string `json:"pair_color"`
	LineColor   string `json:"line_color"`
}

type annotateResult struct {
	Error string `json:"error,omitempty"`
	imaging.EncodedImage
}

func (s *Server) handleAnnotate(args json.RawMessage) (interface{}, error) {
	var a annotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, detectErr, err := s.detect(a.frameArgs)
	if err != nil {
		return nil, err
	}

	overlay := imaging.Overlay{
		Label:       a.Label,
		TargetColor: a.TargetColor,
		PairColor:   a.PairColor,
		LineColor:   a.LineColor,
	}
	for _, t := range vision.SortByXCenter(res.Targets) {
		overlay.Targets = append(overlay.Targets, vecPoint(t))
	}
	if res.Pair != nil {
		overlay.Pair = &[2]image.Point{vecPoint(res.Pair.Left), vecPoint(res.Pair.Right)}
	}

	enc, err := imaging.EncodePNG(imaging.Annotate(res.Frame, overlay))
	if err != nil {
		return nil, err
	}
	out := &annotateResult{EncodedImage: *enc}
	if detectErr != nil {
		out.Error = detectErr.Error()
	}
	return out, nil
}

func vecPoint(t *vision.OrientedTarget) image.Point {
	c := t.Center()
	return image.Pt(int(c.X), int(c.Y))
}

type plotArgs struct {
	frameArgs
	Output string `json:"output"`
}

type plotResult struct {
	Output string `json:"output,omitempty"`
	*imaging.EncodedImage
}

func (s *Server) handlePlotCenters(args json.RawMessage) (interface{}, error) {
	var a plotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, _, err := s.detect(a.frameArgs)
	if err != nil {
		return nil, err
	}

	if a.Output != "" {
		if err := diagplot.SaveCenters(res, a.Output); err != nil {
			return nil, err
		}
		return &plotResult{Output: a.Output}, nil
	}

	data, err := diagplot.RenderPNG(res)
	if err != nil {
		return nil, err
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered plot: %w", err)
	}
	return &plotResult{EncodedImage: &imaging.EncodedImage{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}}, nil
}
