package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/ironsheep/random-shapes/internal/dataset"
	"github.com/ironsheep/random-shapes/internal/detection"
	"github.com/ironsheep/random-shapes/internal/imaging"
)

// callTool sends a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()
	paramsJSON, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeContent unmarshals the text content of a successful tool response.
func decodeContent(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Fatalf("content type: got %v, want text", content[0]["type"])
	}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), v); err != nil {
		t.Fatalf("failed to decode content: %v", err)
	}
}

type generateResponse struct {
	Sample    dataset.Sample        `json:"sample"`
	Image     *imaging.EncodedImage `json:"image"`
	Preview   *imaging.EncodedImage `json:"preview"`
	ImagePath string                `json:"image_path"`
}

func TestShapesGenerate(t *testing.T) {
	s := New("test")

	resp := callTool(t, s, "shapes_generate", map[string]interface{}{
		"rows":       64,
		"cols":       80,
		"max_shapes": 4,
		"seed":       2024,
	})

	var got generateResponse
	decodeContent(t, resp, &got)

	if got.Sample.Seed != 2024 || got.Sample.ID != dataset.SampleID(2024) {
		t.Errorf("sample identity: got seed %d id %s", got.Sample.Seed, got.Sample.ID)
	}
	if got.Sample.Rows != 64 || got.Sample.Cols != 80 {
		t.Errorf("sample size: got %dx%d, want 64x80", got.Sample.Rows, got.Sample.Cols)
	}
	if len(got.Sample.Shapes) == 0 || len(got.Sample.Shapes) > 4 {
		t.Errorf("shape count out of range: %d", len(got.Sample.Shapes))
	}
	if got.Image == nil {
		t.Fatal("image should be included by default")
	}
	if got.Preview != nil {
		t.Error("preview should be omitted by default")
	}

	data, err := base64.StdEncoding.DecodeString(got.Image.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 64 {
		t.Errorf("image bounds: got %v, want 80x64", img.Bounds())
	}

	placed, err := got.Sample.PlacedShapes()
	if err != nil {
		t.Fatalf("PlacedShapes failed: %v", err)
	}
	report, err := detection.Audit(img, placed)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if !report.OK {
		t.Errorf("returned image does not match its labels: %+v", report)
	}
}

func TestShapesGenerate_Deterministic(t *testing.T) {
	s := New("test")
	args := map[string]interface{}{"rows": 50, "cols": 50, "max_shapes": 6, "seed": 9}

	var first, second generateResponse
	decodeContent(t, callTool(t, s, "shapes_generate", args), &first)
	decodeContent(t, callTool(t, s, "shapes_generate", args), &second)

	if first.Image.ImageBase64 != second.Image.ImageBase64 {
		t.Error("same seed produced different images")
	}
	a, _ := json.Marshal(first.Sample)
	b, _ := json.Marshal(second.Sample)
	if string(a) != string(b) {
		t.Errorf("same seed produced different labels:\n%s\n%s", a, b)
	}
}

func TestShapesGenerate_PreviewOnly(t *testing.T) {
	s := New("test")

	var got generateResponse
	decodeContent(t, callTool(t, s, "shapes_generate", map[string]interface{}{
		"rows":            40,
		"cols":            40,
		"max_shapes":      2,
		"seed":            3,
		"include_image":   false,
		"include_preview": true,
	}), &got)

	if got.Image != nil {
		t.Error("image should be omitted")
	}
	if got.Preview == nil || got.Preview.Width != 40 {
		t.Errorf("preview missing or wrong size: %+v", got.Preview)
	}
}

func TestShapesGenerate_InvalidConfiguration(t *testing.T) {
	s := New("test")

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"min size too large", map[string]interface{}{"rows": 10, "cols": 10, "min_size": 20}},
		{"unknown shape", map[string]interface{}{"shape": "hexagon"}},
		{"unknown scenario", map[string]interface{}{"scenario": "mystery"}},
		{"wrong type", map[string]interface{}{"rows": "tall"}},
		{"unbounded shape count", map[string]interface{}{"min_shapes": 0, "max_shapes": math.MaxInt64}},
		{"huge canvas", map[string]interface{}{"rows": math.MaxInt64, "cols": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "shapes_generate", tt.args)
			if resp.Error == nil {
				t.Fatal("expected an error")
			}
			if resp.Error.Code != -32602 {
				t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
			}
		})
	}
}

func TestShapesListScenarios(t *testing.T) {
	s := New("test")

	var got struct {
		Scenarios []struct {
			Name          string             `json:"name"`
			Probabilities map[string]float64 `json:"probabilities"`
		} `json:"scenarios"`
		Categories []string `json:"categories"`
		Default    string   `json:"default"`
	}
	decodeContent(t, callTool(t, s, "shapes_list_scenarios", nil), &got)

	if got.Default != "all-halo" {
		t.Errorf("default: got %s, want all-halo", got.Default)
	}
	if len(got.Scenarios) != 5 {
		t.Errorf("expected 5 scenarios, got %d", len(got.Scenarios))
	}
	for _, sc := range got.Scenarios {
		total := 0.0
		for _, p := range sc.Probabilities {
			total += p
		}
		if total < 0.999 || total > 1.001 {
			t.Errorf("scenario %s probabilities sum to %f", sc.Name, total)
		}
	}
	if len(got.Categories) != 4 {
		t.Errorf("expected 4 categories, got %v", got.Categories)
	}
}

// savedSample generates a sample through the tool and saves it to disk.
func savedSample(t *testing.T, s *Server) (imagePath, labelsPath string, sample dataset.Sample) {
	t.Helper()
	dir := t.TempDir()
	imagePath = filepath.Join(dir, "sample.png")
	labelsPath = filepath.Join(dir, "sample.json")

	var got generateResponse
	decodeContent(t, callTool(t, s, "shapes_generate", map[string]interface{}{
		"rows":          64,
		"cols":          64,
		"max_shapes":    5,
		"min_size":      6,
		"seed":          77,
		"include_image": false,
		"image_path":    imagePath,
		"labels_path":   labelsPath,
	}), &got)

	if got.ImagePath != imagePath {
		t.Fatalf("image_path: got %s, want %s", got.ImagePath, imagePath)
	}
	if len(got.Sample.Shapes) == 0 {
		t.Skip("seed placed no shapes")
	}
	return imagePath, labelsPath, got.Sample
}

func TestShapesAudit(t *testing.T) {
	s := New("test")
	imagePath, labelsPath, sample := savedSample(t, s)

	var report detection.Report
	decodeContent(t, callTool(t, s, "shapes_audit", map[string]interface{}{
		"image_path":  imagePath,
		"labels_path": labelsPath,
	}), &report)

	if !report.OK {
		t.Errorf("saved sample failed its audit: %+v", report)
	}
	if len(report.Shapes) != len(sample.Shapes) {
		t.Errorf("checks: got %d, want %d", len(report.Shapes), len(sample.Shapes))
	}
}

func TestShapesAudit_MissingArguments(t *testing.T) {
	s := New("test")

	resp := callTool(t, s, "shapes_audit", map[string]interface{}{"image_path": "/tmp/x.png"})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestShapesAudit_MissingFile(t *testing.T) {
	s := New("test")
	dir := t.TempDir()

	resp := callTool(t, s, "shapes_audit", map[string]interface{}{
		"image_path":  filepath.Join(dir, "missing.png"),
		"labels_path": filepath.Join(dir, "missing.json"),
	})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool failure, got %+v", resp.Error)
	}
}

func TestShapesCrop(t *testing.T) {
	s := New("test")
	imagePath, labelsPath, sample := savedSample(t, s)

	var got struct {
		Label struct {
			Category string `json:"category"`
		} `json:"label"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		ImageBase64 string `json:"image_base64"`
	}
	decodeContent(t, callTool(t, s, "shapes_crop", map[string]interface{}{
		"image_path":  imagePath,
		"labels_path": labelsPath,
		"index":       0,
	}), &got)

	want := sample.Shapes[0].Label.BBox.Rect().Intersect(image.Rect(0, 0, 64, 64))
	if got.Width != want.Dx() || got.Height != want.Dy() {
		t.Errorf("crop size: got %dx%d, want %dx%d", got.Width, got.Height, want.Dx(), want.Dy())
	}
	if got.Label.Category != sample.Shapes[0].Label.Category {
		t.Errorf("label: got %s, want %s", got.Label.Category, sample.Shapes[0].Label.Category)
	}
	if got.ImageBase64 == "" {
		t.Error("crop image is empty")
	}
}

func TestShapesCrop_IndexOutOfRange(t *testing.T) {
	s := New("test")
	imagePath, labelsPath, sample := savedSample(t, s)

	resp := callTool(t, s, "shapes_crop", map[string]interface{}{
		"image_path":  imagePath,
		"labels_path": labelsPath,
		"index":       len(sample.Shapes),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestShapesSampleColor(t *testing.T) {
	s := New("test")
	imagePath, _, sample := savedSample(t, s)

	sh := sample.Shapes[0]
	if sh.Label.Category != "rectangle" {
		// Only a rectangle is guaranteed to cover its top-left box corner.
		t.Skipf("first shape is a %s", sh.Label.Category)
	}

	var got imaging.ColorResult
	decodeContent(t, callTool(t, s, "shapes_sample_color", map[string]interface{}{
		"image_path": imagePath,
		"x":          sh.Label.BBox.ColMin,
		"y":          sh.Label.BBox.RowMin,
	}), &got)

	want := imaging.RGBColor{R: uint8(sh.Intensity[0]), G: uint8(sh.Intensity[1]), B: uint8(sh.Intensity[2])}
	if got.RGB != want {
		t.Errorf("color: got %+v, want %+v", got.RGB, want)
	}
}

func TestShapesSampleColor_OutOfBounds(t *testing.T) {
	s := New("test")
	imagePath, _, _ := savedSample(t, s)

	resp := callTool(t, s, "shapes_sample_color", map[string]interface{}{
		"image_path": imagePath,
		"x":          1000,
		"y":          0,
	})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("expected tool failure for out-of-bounds pixel, got %+v", resp.Error)
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	s := New("test")

	resp := callTool(t, s, "nonexistent_tool", map[string]interface{}{})
	if resp.Error == nil {
		t.Fatal("expected an error for unknown tool")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New("test")

	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Params: json.RawMessage(`[1,2]`)})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestContentResponse_UnencodableResult(t *testing.T) {
	s := New("test")

	resp := s.contentResponse(3, map[string]interface{}{"value": math.NaN()})
	if resp.Error == nil {
		t.Fatal("expected an error for a result that cannot be encoded")
	}
	if resp.Error.Code != -32000 || resp.ID != 3 {
		t.Errorf("got code %d id %v, want -32000 and 3", resp.Error.Code, resp.ID)
	}
	if resp.Result != nil {
		t.Errorf("result should be empty, got %v", resp.Result)
	}
}

func TestContentResponse_WrapsResult(t *testing.T) {
	s := New("test")

	var got map[string]int
	decodeContent(t, s.contentResponse(1, map[string]int{"shapes": 4}), &got)
	if got["shapes"] != 4 {
		t.Errorf("content: got %v", got)
	}
}
