package shapes

import (
	"fmt"
	"image"

	"github.com/ironsheep/random-shapes/internal/raster"
)

// Background is the intensity every canvas channel starts with.
const Background uint8 = 255

// Canvas is a rows × cols × channels buffer of 8-bit intensities stored
// row-major with interleaved channels.
type Canvas struct {
	Rows     int
	Cols     int
	Channels int
	Pix      []uint8
}

// NewCanvas allocates a canvas filled with the background intensity.
func NewCanvas(rows, cols, channels int) *Canvas {
	pix := make([]uint8, rows*cols*channels)
	for i := range pix {
		pix[i] = Background
	}
	return &Canvas{Rows: rows, Cols: cols, Channels: channels, Pix: pix}
}

// Extent returns the canvas's row/column size.
func (c *Canvas) Extent() raster.Extent {
	return raster.Extent{Rows: c.Rows, Cols: c.Cols}
}

// At returns the channel values of pixel (row, col). The slice aliases the
// canvas buffer.
func (c *Canvas) At(row, col int) []uint8 {
	i := (row*c.Cols + col) * c.Channels
	return c.Pix[i : i+c.Channels : i+c.Channels]
}

// Paint writes color into every pixel of the set.
func (c *Canvas) Paint(pixels raster.PixelSet, color []uint8) {
	for _, p := range pixels {
		copy(c.At(p.Row, p.Col), color)
	}
}

// Image converts the canvas to a standard library image.
//
// One channel becomes *image.Gray, three channels an opaque *image.NRGBA and
// four channels an *image.NRGBA whose fourth channel is alpha. Other channel
// counts have no image.Image equivalent and return an error.
func (c *Canvas) Image() (image.Image, error) {
	rect := image.Rect(0, 0, c.Cols, c.Rows)

	switch c.Channels {
	case 1:
		img := image.NewGray(rect)
		copy(img.Pix, c.Pix)
		return img, nil
	case 3:
		img := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(c.Pix); i, j = i+3, j+4 {
			img.Pix[j] = c.Pix[i]
			img.Pix[j+1] = c.Pix[i+1]
			img.Pix[j+2] = c.Pix[i+2]
			img.Pix[j+3] = 0xff
		}
		return img, nil
	case 4:
		img := image.NewNRGBA(rect)
		copy(img.Pix, c.Pix)
		return img, nil
	default:
		return nil, fmt.Errorf("cannot convert %d-channel canvas to an image", c.Channels)
	}
}

// Mask is the occupancy mask: true where an accepted shape has claimed the
// pixel. Pixels are never released.
type Mask struct {
	extent raster.Extent
	bits   []bool
}

// NewMask returns an empty mask for the extent.
func NewMask(extent raster.Extent) *Mask {
	return &Mask{extent: extent, bits: make([]bool, extent.Rows*extent.Cols)}
}

// Any reports whether any pixel of the set is already claimed.
func (m *Mask) Any(pixels raster.PixelSet) bool {
	for _, p := range pixels {
		if m.bits[p.Row*m.extent.Cols+p.Col] {
			return true
		}
	}
	return false
}

// Claim marks every pixel of the set as occupied.
func (m *Mask) Claim(pixels raster.PixelSet) {
	for _, p := range pixels {
		m.bits[p.Row*m.extent.Cols+p.Col] = true
	}
}

// Count returns the number of claimed pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
