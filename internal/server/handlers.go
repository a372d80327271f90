package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/random-shapes/internal/dataset"
	"github.com/ironsheep/random-shapes/internal/detection"
	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "shapes_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArguments marks tool errors caused by the caller's arguments.
var errInvalidArguments = errors.New("invalid arguments")

func invalidArguments(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errInvalidArguments, fmt.Sprintf(format, args...))
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed or invalid arguments return a JSON-RPC error with code -32602;
// any other tool failure returns code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if errors.Is(err, errInvalidArguments) || errors.Is(err, shapes.ErrInvalidConfiguration) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return s.contentResponse(req.ID, result)
}

// contentResponse wraps a tool result as MCP text content. A result that
// cannot be encoded is reported as a tool failure.
func (s *Server) contentResponse(id interface{}, result interface{}) *MCPResponse {
	text, err := marshalResult(result)
	if err != nil {
		return s.errorResponse(id, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Generation
	case "shapes_generate":
		return s.handleShapesGenerate(args)
	case "shapes_list_scenarios":
		return s.handleShapesListScenarios(args)

	// Inspection
	case "shapes_audit":
		return s.handleShapesAudit(args)
	case "shapes_crop":
		return s.handleShapesCrop(args)
	case "shapes_sample_color":
		return s.handleShapesSampleColor(args)

	default:
		return nil, invalidArguments("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals tool arguments into v. Missing arguments leave v
// unchanged.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidArguments("%v", err)
	}
	return nil
}

// marshalResult converts a tool result to a pretty-printed JSON string.
func marshalResult(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// === Generation Handlers ===

type shapesGenerateArgs struct {
	dataset.ImageConfig

	Seed           *uint64 `json:"seed"`
	IncludeImage   *bool   `json:"include_image"`
	IncludePreview bool    `json:"include_preview"`
	OverlayColor   string  `json:"overlay_color"`
	ImagePath      string  `json:"image_path"`
	LabelsPath     string  `json:"labels_path"`
}

type shapesGenerateResult struct {
	Sample    *dataset.Sample       `json:"sample"`
	Image     *imaging.EncodedImage `json:"image,omitempty"`
	Preview   *imaging.EncodedImage `json:"preview,omitempty"`
	ImagePath string                `json:"image_path,omitempty"`
}

func (s *Server) handleShapesGenerate(args json.RawMessage) (interface{}, error) {
	a := shapesGenerateArgs{ImageConfig: dataset.DefaultImageConfig()}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	seed := shapes.RandomSeed()
	if a.Seed != nil {
		seed = *a.Seed
	}

	result, err := shapes.Generate(a.ImageConfig.Options(seed, nil))
	if err != nil {
		return nil, err
	}
	img, err := result.Canvas.Image()
	if err != nil {
		return nil, err
	}

	out := shapesGenerateResult{Sample: dataset.NewSample(result)}

	if a.IncludeImage == nil || *a.IncludeImage {
		if out.Image, err = imaging.EncodePNGBase64(img); err != nil {
			return nil, err
		}
	}
	if a.IncludePreview {
		preview := dataset.Preview(img, result.Shapes, a.OverlayColor)
		if out.Preview, err = imaging.EncodePNGBase64(preview); err != nil {
			return nil, err
		}
	}
	if a.ImagePath != "" {
		if err := s.cache.SavePNG(a.ImagePath, img); err != nil {
			return nil, err
		}
		out.ImagePath = a.ImagePath
		out.Sample.Image = a.ImagePath
	}
	if a.LabelsPath != "" {
		if err := dataset.WriteSample(a.LabelsPath, out.Sample); err != nil {
			return nil, err
		}
	}

	return out, nil
}

type scenarioListResult struct {
	Scenarios  []shapes.ScenarioInfo `json:"scenarios"`
	Categories []string              `json:"categories"`
	Default    shapes.Scenario       `json:"default"`
}

func (s *Server) handleShapesListScenarios(_ json.RawMessage) (interface{}, error) {
	return scenarioListResult{
		Scenarios:  shapes.Scenarios(),
		Categories: shapes.DefaultRegistry().WithEllipse().Categories(),
		Default:    shapes.DefaultScenario,
	}, nil
}

// === Inspection Handlers ===

type sampleFilesArgs struct {
	ImagePath  string `json:"image_path"`
	LabelsPath string `json:"labels_path"`
}

// loadSample loads a rendered image and its label file.
func (s *Server) loadSample(a sampleFilesArgs) (image.Image, *dataset.Sample, error) {
	if a.ImagePath == "" || a.LabelsPath == "" {
		return nil, nil, invalidArguments("image_path and labels_path are required")
	}
	img, err := s.cache.Load(a.ImagePath)
	if err != nil {
		return nil, nil, err
	}
	sample, err := dataset.ReadSample(a.LabelsPath)
	if err != nil {
		return nil, nil, err
	}
	return img, sample, nil
}

func (s *Server) handleShapesAudit(args json.RawMessage) (interface{}, error) {
	var a sampleFilesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, sample, err := s.loadSample(a)
	if err != nil {
		return nil, err
	}
	placed, err := sample.PlacedShapes()
	if err != nil {
		return nil, err
	}
	return detection.Audit(img, placed)
}

type shapesCropArgs struct {
	sampleFilesArgs
	Index   int     `json:"index"`
	Padding int     `json:"padding"`
	Scale   float64 `json:"scale"`
}

type shapesCropResult struct {
	Label shapes.Label `json:"label"`
	*imaging.EncodedImage
}

func (s *Server) handleShapesCrop(args json.RawMessage) (interface{}, error) {
	a := shapesCropArgs{Scale: 1.0}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, sample, err := s.loadSample(a.sampleFilesArgs)
	if err != nil {
		return nil, err
	}
	if a.Index < 0 || a.Index >= len(sample.Shapes) {
		return nil, invalidArguments("index %d out of range, sample has %d shapes", a.Index, len(sample.Shapes))
	}

	label := sample.Shapes[a.Index].Label
	cropped, err := imaging.Crop(img, label.BBox.Rect(), a.Padding, a.Scale)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNGBase64(cropped)
	if err != nil {
		return nil, err
	}
	return shapesCropResult{Label: label, EncodedImage: encoded}, nil
}

type shapesSampleColorArgs struct {
	ImagePath string `json:"image_path"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

func (s *Server) handleShapesSampleColor(args json.RawMessage) (interface{}, error) {
	var a shapesSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.ImagePath == "" {
		return nil, invalidArguments("image_path is required")
	}
	img, err := s.cache.Load(a.ImagePath)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
