package detection

import (
	"image"
	"image/color"
	"sort"

	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position, the column (0 = leftmost)
	Y int `json:"y"` // Vertical position, the row (0 = topmost)
}

// Component is a connected region of identically colored, non-background
// pixels.
type Component struct {
	// Color is the component's fill as "#RRGGBB".
	Color string `json:"color"`

	// BBox is the tight bounding box of the component's pixels.
	BBox shapes.BBox `json:"bbox"`

	// Pixels is the number of pixels in the component.
	Pixels int `json:"pixels"`

	// Fill is Pixels divided by the area of BBox (0.0 to 1.0). A filled
	// rectangle scores 1.0, a disk about 0.785 and a triangle about 0.5.
	Fill float64 `json:"fill"`

	// Guess is the category suggested by Fill and the box's aspect ratio, or
	// empty when the component is too small to tell.
	Guess string `json:"guess,omitempty"`

	key    color.NRGBA
	points []Point
}

// minGuessSize is the smallest box side for which a category guess is made.
// Disks of radius 3 or less rasterize to full squares.
const minGuessSize = 8

// FindComponents groups the non-background pixels of img into connected
// components of a single exact color.
//
// Parameters:
//   - img: The rendered sample.
//   - background: The canvas background color. Pixels equal to it are
//     skipped.
//
// Returns components sorted by pixel count (largest first), ties broken by
// position.
//
// # Algorithm
//
//  1. Convert every pixel to 8-bit NRGBA.
//  2. Flood-fill from every unvisited non-background pixel, following
//     8-connected neighbors of the same color.
//  3. Record the bounding box, pixel count and fill ratio of each region.
func FindComponents(img image.Image, background color.Color) []Component {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	bg := color.NRGBAModel.Convert(background).(color.NRGBA)

	pix := make([][]color.NRGBA, height)
	for y := 0; y < height; y++ {
		pix[y] = make([]color.NRGBA, width)
		for x := 0; x < width; x++ {
			pix[y][x] = color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
		}
	}

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	components := make([]Component, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y][x] || pix[y][x] == bg {
				continue
			}
			region := floodFill(pix, visited, x, y, width, height)
			components = append(components, describe(region, pix[y][x]))
		}
	}

	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Pixels > components[j].Pixels
	})

	return components
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large shapes. Marks visited pixels and returns every pixel reached through
// 8-connected neighbors of the starting pixel's color.
func floodFill(pix [][]color.NRGBA, visited [][]bool, startX, startY, width, height int) []Point {
	target := pix[startY][startX]
	stack := []Point{{X: startX, Y: startY}}
	region := make([]Point, 0)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || pix[p.Y][p.X] != target {
			continue
		}

		visited[p.Y][p.X] = true
		region = append(region, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return region
}

func describe(region []Point, c color.NRGBA) Component {
	box := shapes.BBox{
		RowMin: region[0].Y, RowMax: region[0].Y + 1,
		ColMin: region[0].X, ColMax: region[0].X + 1,
	}
	for _, p := range region[1:] {
		box.RowMin = min(box.RowMin, p.Y)
		box.RowMax = max(box.RowMax, p.Y+1)
		box.ColMin = min(box.ColMin, p.X)
		box.ColMax = max(box.ColMax, p.X+1)
	}

	fill := float64(len(region)) / float64(box.Height()*box.Width())

	return Component{
		Color:  imaging.DescribeColor(c).Hex,
		BBox:   box,
		Pixels: len(region),
		Fill:   fill,
		Guess:  guessCategory(box, fill),
		key:    c,
		points: region,
	}
}

// guessCategory classifies a solid region by how much of its box it fills.
//
//   - >= 0.97: rectangle
//   - 0.70 to 0.93 with a near-square box: circle
//   - 0.70 to 0.93 otherwise: ellipse
//   - 0.40 to 0.62: triangle
//
// Anything else, and any box smaller than minGuessSize on a side, returns "".
func guessCategory(box shapes.BBox, fill float64) string {
	h, w := box.Height(), box.Width()
	if h < minGuessSize || w < minGuessSize {
		return ""
	}

	aspect := float64(w) / float64(h)
	switch {
	case fill >= 0.97:
		return shapes.CategoryRectangle
	case fill >= 0.70 && fill <= 0.93:
		if aspect >= 0.9 && aspect <= 1.1 {
			return shapes.CategoryCircle
		}
		return shapes.CategoryEllipse
	case fill >= 0.40 && fill <= 0.62:
		return shapes.CategoryTriangle
	default:
		return ""
	}
}
