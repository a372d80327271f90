package dataset

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// namespace scopes sample IDs so the same seed always yields the same ID.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ironsheep/random-shapes"))

// SampleID returns the deterministic ID of the sample generated from seed.
func SampleID(seed uint64) string {
	return uuid.NewSHA1(namespace, []byte(strconv.FormatUint(seed, 10))).String()
}

// ShapeRecord is the serialized form of one placed shape.
type ShapeRecord struct {
	Slot      int          `json:"slot"`
	Label     shapes.Label `json:"label"`
	Intensity []int        `json:"intensity"`
	Pixels    int          `json:"pixels"`
}

// Sample is the label file written next to every generated image.
type Sample struct {
	ID        string        `json:"id"`
	Seed      uint64        `json:"seed"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Channels  int           `json:"channels"`
	Requested int           `json:"requested"`
	Shapes    []ShapeRecord `json:"shapes"`
	Warnings  []string      `json:"warnings,omitempty"`

	// Paths relative to the dataset root, empty outside a dataset.
	Image   string   `json:"image,omitempty"`
	Preview string   `json:"preview,omitempty"`
	Crops   []string `json:"crops,omitempty"`
}

// NewSample builds the label record for a generated result.
func NewSample(result *shapes.Result) *Sample {
	s := &Sample{
		ID:        SampleID(result.Seed),
		Seed:      result.Seed,
		Rows:      result.Canvas.Rows,
		Cols:      result.Canvas.Cols,
		Channels:  result.Canvas.Channels,
		Requested: result.Requested,
		Shapes:    make([]ShapeRecord, 0, len(result.Shapes)),
	}

	for _, sh := range result.Shapes {
		intensity := make([]int, len(sh.Intensity))
		for i, v := range sh.Intensity {
			intensity[i] = int(v)
		}
		s.Shapes = append(s.Shapes, ShapeRecord{
			Slot:      sh.Slot,
			Label:     sh.Label,
			Intensity: intensity,
			Pixels:    sh.Pixels,
		})
	}

	for _, w := range result.Warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	return s
}

// Labels returns the labels of the sample in placement order.
func (s *Sample) Labels() []shapes.Label {
	labels := make([]shapes.Label, len(s.Shapes))
	for i, r := range s.Shapes {
		labels[i] = r.Label
	}
	return labels
}

// PlacedShapes converts the records back into engine shapes. Intensities
// outside 0-255 are rejected.
func (s *Sample) PlacedShapes() ([]shapes.Shape, error) {
	placed := make([]shapes.Shape, len(s.Shapes))
	for i, r := range s.Shapes {
		intensity := make([]uint8, len(r.Intensity))
		for j, v := range r.Intensity {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("shape %d: intensity %d outside 0-255", r.Slot, v)
			}
			intensity[j] = uint8(v)
		}
		placed[i] = shapes.Shape{
			Slot:      r.Slot,
			Label:     r.Label,
			Intensity: intensity,
			Pixels:    r.Pixels,
		}
	}
	return placed, nil
}

// WriteSample writes s as indented JSON.
func WriteSample(path string, s *Sample) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode labels: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}

// ReadSample reads a label file written by WriteSample.
func ReadSample(path string) (*Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}

	var s Sample
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse labels: %w", err)
	}
	return &s, nil
}

// Preview draws every shape's bounding box and category onto a copy of img.
func Preview(img image.Image, placed []shapes.Shape, colorHex string) *image.NRGBA {
	boxes := make([]imaging.Box, len(placed))
	for i, s := range placed {
		boxes[i] = imaging.Box{Rect: s.Label.BBox.Rect(), Caption: s.Label.Category}
	}
	return imaging.DrawBoxes(img, boxes, colorHex)
}
