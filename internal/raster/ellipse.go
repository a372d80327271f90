package raster

import "math"

// Disk returns the pixels strictly inside the circle of the given integer
// radius centered on pixel (row, col), clipped to extent.
//
// A pixel (r, c) is inside when (r-row)² + (c-col)² < radius². The covered
// rows are therefore row-radius+1 through row+radius-1, and likewise for
// columns.
func Disk(row, col, radius int, extent Extent) PixelSet {
	if radius <= 0 {
		return PixelSet{}
	}
	r0, r1, c0, c1 := extent.window(row-radius+1, row+radius, col-radius+1, col+radius)
	limit := radius * radius

	pixels := make(PixelSet, 0, max(0, (r1-r0)*(c1-c0)))
	for r := r0; r < r1; r++ {
		dr := r - row
		for c := c0; c < c1; c++ {
			dc := c - col
			if dr*dr+dc*dc < limit {
				pixels = append(pixels, Pixel{Row: r, Col: c})
			}
		}
	}
	return pixels
}

// Ellipse returns the pixels strictly inside the ellipse centered on
// (row, col) with semi-axes rRadius (along rows) and cRadius (along columns),
// rotated by rotation radians, clipped to extent.
//
// Pixel (r, c) is inside when
//
//	((dr·cos θ + dc·sin θ) / rRadius)² + ((dr·sin θ − dc·cos θ) / cRadius)² < 1
//
// with dr = r - row and dc = c - col.
func Ellipse(row, col, rRadius, cRadius, rotation float64, extent Extent) PixelSet {
	if rRadius <= 0 || cRadius <= 0 {
		return PixelSet{}
	}
	sin, cos := math.Sincos(rotation)

	// Half-extents of the rotated ellipse's bounding box.
	halfR := math.Sqrt(rRadius*rRadius*cos*cos + cRadius*cRadius*sin*sin)
	halfC := math.Sqrt(rRadius*rRadius*sin*sin + cRadius*cRadius*cos*cos)

	r0, r1, c0, c1 := extent.window(
		int(math.Floor(row-halfR)), int(math.Ceil(row+halfR))+1,
		int(math.Floor(col-halfC)), int(math.Ceil(col+halfC))+1,
	)

	pixels := make(PixelSet, 0, max(0, (r1-r0)*(c1-c0)))
	for r := r0; r < r1; r++ {
		dr := float64(r) - row
		for c := c0; c < c1; c++ {
			dc := float64(c) - col
			a := (dr*cos + dc*sin) / rRadius
			b := (dr*sin - dc*cos) / cRadius
			if a*a+b*b < 1 {
				pixels = append(pixels, Pixel{Row: r, Col: c})
			}
		}
	}
	return pixels
}
