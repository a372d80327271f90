package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// The same color is given as a hex string, 8-bit RGB and RGBA components, and
// HSL. Hex never carries alpha; use RGBA.A for transparency.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// DescribeColor converts any color.Color into a ColorResult.
//
// Gray colors expand to equal R, G and B components. Colors with partial
// alpha are un-premultiplied before the hex and HSL forms are computed, so a
// shape painted with (200, 10, 10, 128) reports "#C80A0A" with A = 128.
func DescribeColor(c color.Color) ColorResult {
	_, _, _, a := c.RGBA()
	a8 := uint8(a >> 8)

	cf, ok := colorful.MakeColor(c)
	if !ok {
		// Fully transparent: there is no meaningful hue to report.
		return ColorResult{
			Hex:  "#000000",
			RGBA: RGBAColor{A: 0},
		}
	}
	cf = cf.Clamped()

	r8, g8, b8 := cf.RGB255()
	h, s, l := cf.Hsl()

	return ColorResult{
		Hex:  strings.ToUpper(cf.Hex()),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel, i.e. the column).
//   - y: Y coordinate (0-based, 0 = topmost pixel, i.e. the row).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	result := DescribeColor(img.At(x, y))
	return &result, nil
}

// ColorFrequency represents a color and how much of an image it covers.
type ColorFrequency struct {
	Hex        string  `json:"hex"`        // Hex color "#RRGGBB"
	Pixels     int     `json:"pixels"`     // Number of pixels with this color
	Percentage float64 `json:"percentage"` // Share of all pixels (0-100)
}

// Palette lists the exact colors of an image ordered by coverage, most common
// first. Ties are broken by hex value so the order is stable.
//
// Rendered samples contain only the background and the flat fill of each
// shape, so no quantization is applied. If count is positive the result is
// truncated to the count most common colors.
func Palette(img image.Image, count int) []ColorFrequency {
	bounds := img.Bounds()
	counts := make(map[string]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			counts[DescribeColor(img.At(x, y)).Hex]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for hex, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        hex,
			Pixels:     n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Pixels != colors[j].Pixels {
			return colors[i].Pixels > colors[j].Pixels
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}
	return colors
}

// parseHexColor parses "#RRGGBB" (or the short "#RGB") into an opaque color.
func parseHexColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
