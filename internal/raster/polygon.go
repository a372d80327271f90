package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// coverageThreshold is the minimum alpha (out of 0xff) for a pixel to count
// as covered by a polygon.
const coverageThreshold = 0x80

// Polygon returns the pixels covered by the closed polygon whose vertices are
// (rows[i], cols[i]), clipped to extent.
//
// Parameters:
//   - rows, cols: Vertex coordinates in pixel-edge space. Both slices must
//     have the same length and describe at least 3 vertices.
//   - extent: Canvas size used for clipping.
//
// Returns:
//   - PixelSet: Covered pixels, row by row. Empty if the polygon lies fully
//     outside the extent or covers no pixel by at least half.
//   - error: Non-nil if the vertex slices are malformed.
//
// Only the bounding window of the polygon is rasterized, so the cost is
// proportional to the polygon's area rather than the canvas size.
func Polygon(rows, cols []float64, extent Extent) (PixelSet, error) {
	if len(rows) != len(cols) {
		return nil, fmt.Errorf("polygon has %d row coordinates but %d column coordinates", len(rows), len(cols))
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(rows))
	}

	minR, maxR := rows[0], rows[0]
	minC, maxC := cols[0], cols[0]
	for i := 1; i < len(rows); i++ {
		minR = math.Min(minR, rows[i])
		maxR = math.Max(maxR, rows[i])
		minC = math.Min(minC, cols[i])
		maxC = math.Max(maxC, cols[i])
	}

	r0, r1, c0, c1 := extent.window(
		int(math.Floor(minR)), int(math.Ceil(maxR)),
		int(math.Floor(minC)), int(math.Ceil(maxC)),
	)
	if r0 >= r1 || c0 >= c1 {
		return PixelSet{}, nil
	}

	w, h := c1-c0, r1-r0
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	// Vertices outside the window are clipped by the rasterizer.
	z.MoveTo(float32(cols[0]-float64(c0)), float32(rows[0]-float64(r0)))
	for i := 1; i < len(rows); i++ {
		z.LineTo(float32(cols[i]-float64(c0)), float32(rows[i]-float64(r0)))
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	pixels := make(PixelSet, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.AlphaAt(x, y).A >= coverageThreshold {
				pixels = append(pixels, Pixel{Row: r0 + y, Col: c0 + x})
			}
		}
	}
	return pixels, nil
}

// Rectangle returns the axis-aligned filled rectangle with top-left pixel
// (row, col) and the given height and width, clipped to extent.
func Rectangle(row, col, height, width int, extent Extent) (PixelSet, error) {
	return Polygon(
		[]float64{float64(row), float64(row + height), float64(row + height), float64(row)},
		[]float64{float64(col), float64(col), float64(col + width), float64(col + width)},
		extent,
	)
}
