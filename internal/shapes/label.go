package shapes

import (
	"image"
	"image/color"

	"github.com/ironsheep/random-shapes/internal/raster"
)

// Shape categories known to the default fitters.
const (
	CategoryRectangle = "rectangle"
	CategoryCircle    = "circle"
	CategoryTriangle  = "triangle"
	CategoryEllipse   = "ellipse"
)

// BBox is an axis-aligned bounding box in pixel coordinates.
//
// RowMin and ColMin are inclusive, RowMax and ColMax are exclusive, so
// Height = RowMax - RowMin and Width = ColMax - ColMin.
type BBox struct {
	RowMin int `json:"row_min" yaml:"row_min"`
	RowMax int `json:"row_max" yaml:"row_max"`
	ColMin int `json:"col_min" yaml:"col_min"`
	ColMax int `json:"col_max" yaml:"col_max"`
}

// Height returns the number of rows spanned by the box.
func (b BBox) Height() int { return b.RowMax - b.RowMin }

// Width returns the number of columns spanned by the box.
func (b BBox) Width() int { return b.ColMax - b.ColMin }

// Rect converts the box to an image.Rectangle (X = column, Y = row).
func (b BBox) Rect() image.Rectangle {
	return image.Rect(b.ColMin, b.RowMin, b.ColMax, b.RowMax)
}

// Contains reports whether p lies inside the box.
func (b BBox) Contains(p raster.Pixel) bool {
	return p.Row >= b.RowMin && p.Row < b.RowMax && p.Col >= b.ColMin && p.Col < b.ColMax
}

// Label names the category and bounding box of one placed shape. Labels are
// values and are never modified after the fitter creates them.
type Label struct {
	Category string `json:"category" yaml:"category"`
	BBox     BBox   `json:"bbox" yaml:"bbox"`
}

// Proposal is a fitted but not yet accepted shape.
type Proposal struct {
	Pixels raster.PixelSet
	Label  Label
}

// Shape describes an accepted shape: which slot it filled, its label, the
// color it was painted with and how many pixels it claimed.
type Shape struct {
	Slot      int     `json:"slot"`
	Label     Label   `json:"label"`
	Intensity []uint8 `json:"intensity"`
	Pixels    int     `json:"pixels"`
}

// Color returns the shape's fill as a color.Color matching the canvas's
// image representation.
func (s Shape) Color() color.Color {
	return intensityColor(s.Intensity)
}

func intensityColor(v []uint8) color.Color {
	switch len(v) {
	case 0:
		return color.Gray{}
	case 1, 2:
		return color.Gray{Y: v[0]}
	case 3:
		return color.NRGBA{R: v[0], G: v[1], B: v[2], A: 0xff}
	default:
		return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
	}
}
