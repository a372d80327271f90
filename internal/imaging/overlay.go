package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultOverlayColor is the outline color used when none (or an invalid
// one) is given.
const DefaultOverlayColor = "#FF0000"

// Box is one rectangle to outline on a preview, with an optional caption
// drawn at its top-left corner.
type Box struct {
	Rect    image.Rectangle
	Caption string
}

// DrawBoxes returns a copy of img with every box outlined in a 1-pixel
// border and its caption drawn in a small bitmap font.
//
// Parameters:
//   - img: The source image. It is not modified.
//   - boxes: Rectangles to draw, X = column and Y = row, Max exclusive.
//   - colorHex: Outline color as "#RRGGBB". Falls back to
//     DefaultOverlayColor if empty or invalid.
//
// Captions sit just above the box when there is room and inside the top edge
// otherwise. Anything outside the image is clipped.
func DrawBoxes(img image.Image, boxes []Box, colorHex string) *image.NRGBA {
	outline, err := parseHexColor(colorHex)
	if err != nil {
		outline, _ = parseHexColor(DefaultOverlayColor)
	}

	result := imaging.Clone(img)
	bounds := result.Bounds()

	for _, box := range boxes {
		r := box.Rect.Canon()
		if r.Empty() {
			continue
		}
		drawOutline(result, r, outline)
		if box.Caption != "" {
			drawCaption(result, r, box.Caption, outline, bounds)
		}
	}

	return result
}

func drawOutline(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}

func drawCaption(img *image.NRGBA, r image.Rectangle, text string, bg color.NRGBA, bounds image.Rectangle) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	height := face.Height

	top := r.Min.Y - height
	if top < bounds.Min.Y {
		top = r.Min.Y
	}
	plate := image.Rect(r.Min.X, top, r.Min.X+width+2, top+height).Intersect(bounds)
	draw.Draw(img, plate, image.NewUniform(bg), image.Point{}, draw.Src)

	d.Dot = fixed.P(r.Min.X+1, top+face.Ascent)
	d.DrawString(text)
}
