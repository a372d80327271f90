package raster

import "image"

// Pixel is a single integer pixel coordinate.
type Pixel struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Extent is the row/column size of the canvas a shape is clipped to.
type Extent struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Contains reports whether p lies inside the extent.
func (e Extent) Contains(p Pixel) bool {
	return p.Row >= 0 && p.Row < e.Rows && p.Col >= 0 && p.Col < e.Cols
}

// Rect returns the extent as an image rectangle (X = Col, Y = Row).
func (e Extent) Rect() image.Rectangle {
	return image.Rect(0, 0, e.Cols, e.Rows)
}

// PixelSet is the list of pixels covered by one shape. Pixels are unique and
// ordered row by row.
type PixelSet []Pixel

// Bounds returns the half-open row and column ranges spanned by the set.
// ok is false for an empty set.
func (s PixelSet) Bounds() (rowMin, rowMax, colMin, colMax int, ok bool) {
	if len(s) == 0 {
		return 0, 0, 0, 0, false
	}
	rowMin, colMin = s[0].Row, s[0].Col
	rowMax, colMax = s[0].Row, s[0].Col
	for _, p := range s[1:] {
		if p.Row < rowMin {
			rowMin = p.Row
		}
		if p.Row > rowMax {
			rowMax = p.Row
		}
		if p.Col < colMin {
			colMin = p.Col
		}
		if p.Col > colMax {
			colMax = p.Col
		}
	}
	return rowMin, rowMax + 1, colMin, colMax + 1, true
}

// window intersects the half-open box [r0,r1) × [c0,c1) with the extent.
func (e Extent) window(r0, r1, c0, c1 int) (int, int, int, int) {
	return max(r0, 0), min(r1, e.Rows), max(c0, 0), min(c1, e.Cols)
}
