package detection

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// ShapeCheck is the audit result for one labeled shape.
type ShapeCheck struct {
	// Slot and Label identify the shape as it was recorded.
	Slot  int          `json:"slot"`
	Label shapes.Label `json:"label"`

	// Color is the expected fill as "#RRGGBB", empty when the record carries
	// no intensity.
	Color string `json:"color,omitempty"`

	// Matched is true when at least one pixel of the expected color (or any
	// color, without an intensity) lies inside the label box.
	Matched bool `json:"matched"`

	// Pixels counts the visible pixels attributed to the shape. Occluded is
	// how many of the recorded pixels are no longer visible, which is only
	// non-zero when shapes were allowed to overlap.
	Pixels   int `json:"pixels"`
	Occluded int `json:"occluded,omitempty"`

	// Guess is the category suggested by the largest matching component that
	// lies entirely inside the label box, and CategoryAgrees reports whether
	// it is consistent with the label. Both are informational and do not
	// affect Report.OK.
	Guess          string `json:"guess,omitempty"`
	CategoryAgrees bool   `json:"category_agrees"`

	Problems []string `json:"problems,omitempty"`
}

// Report is the result of auditing a rendered sample against its labels.
type Report struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Shapes holds one check per recorded shape, in record order.
	Shapes []ShapeCheck `json:"shapes"`

	// Components is the number of solid regions found in the image.
	Components int `json:"components"`

	// Unclaimed lists regions with pixels that no label accounts for.
	Unclaimed []Component `json:"unclaimed,omitempty"`

	// Colors is the image palette, most common first.
	Colors []imaging.ColorFrequency `json:"colors"`

	// OK is true when every shape matched and no region is unclaimed.
	OK bool `json:"ok"`
}

// paletteLimit caps Report.Colors.
const paletteLimit = 16

// Audit checks that a rendered sample agrees with its recorded shapes.
//
// Parameters:
//   - img: The rendered sample, white background.
//   - placed: The shapes recorded for the sample. Intensities are optional;
//     when present, only regions of the shape's exact color are attributed
//     to it.
//
// Returns an error only if img is empty.
//
// # Algorithm
//
//  1. Find the solid components of the image (see FindComponents).
//  2. For each shape, claim every pixel of a matching component that lies
//     inside the label box. Touching shapes of one color form a single
//     component, which is split between their boxes this way.
//  3. Shapes that claim nothing, and components with pixels nobody claims,
//     make the report fail.
func Audit(img image.Image, placed []shapes.Shape) (*Report, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot audit an empty image")
	}

	components := FindComponents(img, backgroundColor)
	claimed := make([][]bool, bounds.Dy())
	for y := range claimed {
		claimed[y] = make([]bool, bounds.Dx())
	}
	// Components and labels both count rows and columns from the image origin.
	frame := shapes.BBox{RowMin: 0, RowMax: bounds.Dy(), ColMin: 0, ColMax: bounds.Dx()}

	report := &Report{
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Shapes:     make([]ShapeCheck, 0, len(placed)),
		Components: len(components),
		Colors:     imaging.Palette(img, paletteLimit),
		OK:         true,
	}

	for _, s := range placed {
		check := ShapeCheck{Slot: s.Slot, Label: s.Label}
		box := s.Label.BBox

		var want *color.NRGBA
		if len(s.Intensity) > 0 {
			c := color.NRGBAModel.Convert(s.Color()).(color.NRGBA)
			want = &c
			check.Color = imaging.DescribeColor(c).Hex
		}

		if !within(box, frame) {
			check.Problems = append(check.Problems, "bounding box outside image")
		}

		largest := -1
		for i, comp := range components {
			if want != nil && comp.key != *want {
				continue
			}
			inside := 0
			for _, p := range comp.points {
				if contains(box, p) {
					claimed[p.Y][p.X] = true
					inside++
				}
			}
			if inside == 0 {
				continue
			}
			check.Pixels += inside
			if within(comp.BBox, box) && (largest < 0 || comp.Pixels > components[largest].Pixels) {
				largest = i
			}
		}

		check.Matched = check.Pixels > 0
		if !check.Matched {
			check.Problems = append(check.Problems, "no matching pixels inside bounding box")
		}
		if s.Pixels > check.Pixels {
			check.Occluded = s.Pixels - check.Pixels
		}

		if largest >= 0 {
			check.Guess = components[largest].Guess
		}
		check.CategoryAgrees = categoriesAgree(check.Guess, s.Label.Category)

		if len(check.Problems) > 0 {
			report.OK = false
		}
		report.Shapes = append(report.Shapes, check)
	}

	for _, comp := range components {
		for _, p := range comp.points {
			if !claimed[p.Y][p.X] {
				report.Unclaimed = append(report.Unclaimed, comp)
				report.OK = false
				break
			}
		}
	}

	return report, nil
}

var backgroundColor = color.NRGBA{R: shapes.Background, G: shapes.Background, B: shapes.Background, A: 0xff}

// within reports whether inner lies entirely inside outer.
func within(inner, outer shapes.BBox) bool {
	return inner.RowMin >= outer.RowMin && inner.RowMax <= outer.RowMax &&
		inner.ColMin >= outer.ColMin && inner.ColMax <= outer.ColMax
}

func contains(box shapes.BBox, p Point) bool {
	return p.Y >= box.RowMin && p.Y < box.RowMax && p.X >= box.ColMin && p.X < box.ColMax
}

func categoriesAgree(guess, category string) bool {
	if guess == "" || guess == category {
		return true
	}
	round := func(c string) bool {
		return c == shapes.CategoryCircle || c == shapes.CategoryEllipse
	}
	return round(guess) && round(category)
}
