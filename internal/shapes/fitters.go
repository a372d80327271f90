package shapes

import (
	"math"

	"github.com/ironsheep/random-shapes/internal/raster"
)

// SizeRange bounds the sampled linear dimension of every shape in a run.
// Both bounds are inclusive.
type SizeRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Fitter turns an anchor pixel into a concrete shape of one category.
//
// Fit returns an error wrapping ErrGeometryInfeasible when no shape within
// size can be placed at anchor, and an error wrapping ErrInvalidConfiguration
// when size itself is unusable for the category. Validate performs the
// latter check up front so a run can fail before drawing anything.
type Fitter interface {
	Category() string
	Validate(size SizeRange) error
	Fit(anchor raster.Pixel, extent raster.Extent, size SizeRange, s *Stream) (Proposal, error)
}

// Rectangle fits axis-aligned filled rectangles whose top-left corner is the
// anchor.
type Rectangle struct{}

func (Rectangle) Category() string { return CategoryRectangle }

func (Rectangle) Validate(size SizeRange) error { return nil }

// Fit draws a height and then a width, each uniform in [size.Min, available]
// where available is limited by the canvas edge and size.Max.
func (Rectangle) Fit(anchor raster.Pixel, extent raster.Extent, size SizeRange, s *Stream) (Proposal, error) {
	availableWidth := min(extent.Cols-anchor.Col, size.Max)
	if availableWidth < size.Min {
		return Proposal{}, infeasiblef("rectangle at (%d,%d): width %d < %d", anchor.Row, anchor.Col, availableWidth, size.Min)
	}
	availableHeight := min(extent.Rows-anchor.Row, size.Max)
	if availableHeight < size.Min {
		return Proposal{}, infeasiblef("rectangle at (%d,%d): height %d < %d", anchor.Row, anchor.Col, availableHeight, size.Min)
	}

	height := s.IntRange(size.Min, availableHeight)
	width := s.IntRange(size.Min, availableWidth)

	pixels, err := raster.Rectangle(anchor.Row, anchor.Col, height, width, extent)
	if err != nil {
		return Proposal{}, err
	}

	return Proposal{
		Pixels: pixels,
		Label: Label{
			Category: CategoryRectangle,
			BBox: BBox{
				RowMin: anchor.Row,
				RowMax: anchor.Row + height,
				ColMin: anchor.Col,
				ColMax: anchor.Col + width,
			},
		},
	}, nil
}

// Circle fits filled disks centered on the anchor.
type Circle struct{}

func (Circle) Category() string { return CategoryCircle }

// Validate rejects sizes of 1, which would give a zero-radius disk.
func (Circle) Validate(size SizeRange) error {
	if size.Min <= 1 || size.Max <= 1 {
		return invalidf("size must be > 1 for circles, got [%d, %d]", size.Min, size.Max)
	}
	return nil
}

// Fit draws an integer radius in [floor(size.Min/2), floor(available)] where
// available is the distance from the anchor to the nearest canvas edge,
// capped at size.Max/2.
//
// The label keeps the disk pixel convention: rows center-radius+1 through
// center+radius-1 are filled and the box is (center-radius+1, center+radius)
// on both axes.
func (c Circle) Fit(anchor raster.Pixel, extent raster.Extent, size SizeRange, s *Stream) (Proposal, error) {
	if err := c.Validate(size); err != nil {
		return Proposal{}, err
	}
	minRadius, available, err := fitRadius(anchor, extent, size)
	if err != nil {
		return Proposal{}, err
	}

	radius := s.IntRange(int(minRadius), int(available))
	pixels := raster.Disk(anchor.Row, anchor.Col, radius, extent)

	return Proposal{
		Pixels: pixels,
		Label: Label{
			Category: CategoryCircle,
			BBox: BBox{
				RowMin: anchor.Row - radius + 1,
				RowMax: anchor.Row + radius,
				ColMin: anchor.Col - radius + 1,
				ColMax: anchor.Col + radius,
			},
		},
	}, nil
}

// fitRadius returns the minimum radius for size and the largest radius that
// keeps a disk centered on anchor inside extent.
func fitRadius(anchor raster.Pixel, extent raster.Extent, size SizeRange) (float64, float64, error) {
	minRadius := float64(size.Min) / 2
	maxRadius := float64(size.Max) / 2

	edge := min(anchor.Col, extent.Cols-anchor.Col, anchor.Row, extent.Rows-anchor.Row)
	available := math.Min(float64(edge), maxRadius)
	if available < minRadius {
		return 0, 0, infeasiblef("radius at (%d,%d): %.1f < %.1f", anchor.Row, anchor.Col, available, minRadius)
	}
	return minRadius, available, nil
}

// triangleAspect is the height of an equilateral triangle with unit side.
var triangleAspect = math.Sqrt(3.0 / 4.0)

// Triangle fits filled equilateral triangles with a horizontal base. The
// anchor is the left end of the base; the apex points up.
type Triangle struct{}

func (Triangle) Category() string { return CategoryTriangle }

// Validate rejects sizes of 1, which would give a degenerate triangle.
func (Triangle) Validate(size SizeRange) error {
	if size.Min <= 1 || size.Max <= 1 {
		return invalidf("dimension must be > 1 for triangles, got [%d, %d]", size.Min, size.Max)
	}
	return nil
}

// Fit draws a side length in [size.Min, available], where available is
// limited by the right canvas edge, the rows above the anchor and size.Max.
// The triangle's height is ceil(side·√(3/4)).
func (t Triangle) Fit(anchor raster.Pixel, extent raster.Extent, size SizeRange, s *Stream) (Proposal, error) {
	if err := t.Validate(size); err != nil {
		return Proposal{}, err
	}
	availableSide := min(extent.Cols-anchor.Col, anchor.Row+1, size.Max)
	if availableSide < size.Min {
		return Proposal{}, infeasiblef("triangle at (%d,%d): side %d < %d", anchor.Row, anchor.Col, availableSide, size.Min)
	}

	side := s.IntRange(size.Min, availableSide)
	height := int(math.Ceil(triangleAspect * float64(side)))

	row, col := float64(anchor.Row), float64(anchor.Col)
	pixels, err := raster.Polygon(
		[]float64{row, row - float64(height), row},
		[]float64{col, col + float64(side/2), col + float64(side)},
		extent,
	)
	if err != nil {
		return Proposal{}, err
	}
	if len(pixels) == 0 {
		return Proposal{}, infeasiblef("triangle at (%d,%d): side %d covers no pixels", anchor.Row, anchor.Col, side)
	}

	return Proposal{
		Pixels: pixels,
		Label: Label{
			Category: CategoryTriangle,
			BBox: BBox{
				// The apex can sit one row above the canvas; clip the box to it.
				RowMin: max(anchor.Row-height, 0),
				RowMax: anchor.Row,
				ColMin: anchor.Col,
				ColMax: anchor.Col + side,
			},
		},
	}, nil
}

// Ellipse fits filled, randomly rotated ellipses centered on the anchor.
// It is not part of the default registry; see Registry.WithEllipse.
type Ellipse struct{}

func (Ellipse) Category() string { return CategoryEllipse }

// Validate rejects sizes of 1, as for circles.
func (Ellipse) Validate(size SizeRange) error {
	if size.Min <= 1 || size.Max <= 1 {
		return invalidf("size must be > 1 for ellipses, got [%d, %d]", size.Min, size.Max)
	}
	return nil
}

// Fit draws a row radius and a column radius, each uniform in
// [size.Min/2, available+1), and a rotation uniform in [-π, π). The radius
// bound is the circle's, which is conservative for the shorter axis. The
// label is the bounding box of the rasterized pixels.
func (e Ellipse) Fit(anchor raster.Pixel, extent raster.Extent, size SizeRange, s *Stream) (Proposal, error) {
	if err := e.Validate(size); err != nil {
		return Proposal{}, err
	}
	minRadius, available, err := fitRadius(anchor, extent, size)
	if err != nil {
		return Proposal{}, err
	}

	rowRadius := s.Float64Range(minRadius, available+1)
	colRadius := s.Float64Range(minRadius, available+1)
	rotation := s.Float64Range(-math.Pi, math.Pi)

	pixels := raster.Ellipse(float64(anchor.Row), float64(anchor.Col), rowRadius, colRadius, rotation, extent)
	rowMin, rowMax, colMin, colMax, ok := pixels.Bounds()
	if !ok {
		return Proposal{}, infeasiblef("ellipse at (%d,%d) covers no pixels", anchor.Row, anchor.Col)
	}

	return Proposal{
		Pixels: pixels,
		Label: Label{
			Category: CategoryEllipse,
			BBox:     BBox{RowMin: rowMin, RowMax: rowMax, ColMin: colMin, ColMax: colMax},
		},
	}, nil
}
