package shapes

import (
	"errors"
	"log"

	"github.com/ironsheep/random-shapes/internal/raster"
)

// Default option values, matching DefaultOptions.
const (
	DefaultMinShapes = 1
	DefaultMinSize   = 2
	DefaultChannels  = 3
	DefaultTrials    = 100
)

// Options configures one generation run.
type Options struct {
	// Rows and Cols are the canvas size in pixels.
	Rows int
	Cols int

	// The number of shape slots is drawn uniformly from [MinShapes, MaxShapes].
	MinShapes int
	MaxShapes int

	// MinSize and MaxSize bound every sampled linear dimension. MaxSize 0
	// means max(Rows, Cols).
	MinSize int
	MaxSize int

	// Multichannel false forces a single channel and a grayscale image.
	Multichannel bool
	Channels     int

	// Shape pins every slot to one category. Empty selects categories from
	// Distribution, or from Scenario if Distribution is nil.
	Shape        string
	Scenario     Scenario
	Distribution *Distribution

	// IntensityRanges holds one range shared by all channels or one per
	// channel. Empty means DefaultIntensityRange.
	IntensityRanges []IntensityRange

	// AllowOverlap skips the occupancy check.
	AllowOverlap bool

	// Trials is the number of anchors tried per slot.
	Trials int

	// Seed makes the run reproducible. Nil draws a fresh seed, which is
	// reported in Result.Seed.
	Seed *uint64

	// EnableEllipse adds the ellipse fitter to the registry.
	EnableEllipse bool

	// Registry overrides the default fitter registry.
	Registry *Registry

	// Logger receives placement warnings. Nil uses log.Default().
	Logger *log.Logger
}

// DefaultOptions returns options for a rows × cols canvas with up to
// maxShapes shapes and every other setting at its default.
func DefaultOptions(rows, cols, maxShapes int) Options {
	return Options{
		Rows:         rows,
		Cols:         cols,
		MinShapes:    DefaultMinShapes,
		MaxShapes:    maxShapes,
		MinSize:      DefaultMinSize,
		Multichannel: true,
		Channels:     DefaultChannels,
		Scenario:     DefaultScenario,
		Trials:       DefaultTrials,
	}
}

// Seeded returns a pointer to seed, for Options.Seed.
func Seeded(seed uint64) *uint64 {
	return &seed
}

// Result is the output of Generate.
type Result struct {
	// Canvas holds the rendered pixels.
	Canvas *Canvas

	// Labels lists accepted shapes in placement order.
	Labels []Label

	// Shapes parallels Labels with slot, color and pixel count.
	Shapes []Shape

	// Colors is the color table drawn for all slots, including slots that
	// could not be placed.
	Colors ColorTable

	// Requested is the number of shape slots drawn for this run.
	Requested int

	// Warnings holds one *PlacementExhaustedError per skipped slot.
	Warnings []error

	// Seed is the seed the run used.
	Seed uint64
}

// Upper bounds on what one run may allocate.
const (
	maxCanvasBytes = 1 << 28
	maxShapeSlots  = 1 << 16
)

// plan is a validated run configuration.
type plan struct {
	extent    raster.Extent
	size      SizeRange
	channels  int
	intensity []IntensityRange
	selector  *Selector
}

// validate checks opts and resolves everything Generate needs. It never
// draws randomness.
func (opts Options) validate() (*plan, error) {
	if opts.Rows <= 0 || opts.Cols <= 0 {
		return nil, invalidf("image shape must be positive, got %dx%d", opts.Rows, opts.Cols)
	}
	if opts.MinSize > opts.Rows || opts.MinSize > opts.Cols {
		return nil, invalidf("minimum dimension %d must be less than ncols %d and nrows %d", opts.MinSize, opts.Cols, opts.Rows)
	}
	if opts.MinSize < 1 {
		return nil, invalidf("minimum dimension must be at least 1, got %d", opts.MinSize)
	}
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = max(opts.Rows, opts.Cols)
	}
	if maxSize < opts.MinSize {
		return nil, invalidf("maximum dimension %d is below minimum dimension %d", maxSize, opts.MinSize)
	}
	if opts.Rows > maxCanvasBytes/opts.Cols {
		return nil, invalidf("image shape %dx%d exceeds %d pixels", opts.Rows, opts.Cols, maxCanvasBytes)
	}
	if opts.MinShapes < 0 || opts.MaxShapes < opts.MinShapes {
		return nil, invalidf("shape count range [%d, %d] is invalid", opts.MinShapes, opts.MaxShapes)
	}
	if slots := min(opts.Rows*opts.Cols, maxShapeSlots); opts.MaxShapes > slots {
		return nil, invalidf("maximum number of shapes %d exceeds %d", opts.MaxShapes, slots)
	}
	if opts.Trials < 0 {
		return nil, invalidf("number of trials must not be negative, got %d", opts.Trials)
	}

	channels := opts.Channels
	if !opts.Multichannel {
		channels = 1
	}
	if channels < 1 {
		return nil, invalidf("number of channels must be positive, got %d", channels)
	}
	if channels > maxCanvasBytes/(opts.Rows*opts.Cols) {
		return nil, invalidf("%d channels of %dx%d exceed %d bytes", channels, opts.Rows, opts.Cols, maxCanvasBytes)
	}
	intensity, err := resolveIntensityRanges(channels, opts.IntensityRanges)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}
	if opts.EnableEllipse {
		registry = registry.WithEllipse()
	}

	var dist Distribution
	if opts.Shape == "" {
		if opts.Distribution != nil {
			dist = *opts.Distribution
		} else {
			scenario := opts.Scenario
			if scenario == "" {
				scenario = DefaultScenario
			}
			if dist, err = LookupScenario(scenario); err != nil {
				return nil, err
			}
		}
	}
	selector, err := NewSelector(registry, opts.Shape, dist)
	if err != nil {
		return nil, err
	}

	size := SizeRange{Min: opts.MinSize, Max: maxSize}
	for _, f := range selector.Candidates() {
		if err := f.Validate(size); err != nil {
			return nil, err
		}
	}

	return &plan{
		extent:    raster.Extent{Rows: opts.Rows, Cols: opts.Cols},
		size:      size,
		channels:  channels,
		intensity: intensity,
		selector:  selector,
	}, nil
}

// Generate draws a random image of non-overlapping (or, with AllowOverlap,
// overlapping) shapes and labels every shape it placed.
//
// Parameters:
//   - opts: Run configuration. Start from DefaultOptions.
//
// Returns:
//   - *Result: Canvas, labels in placement order, per-shape details and any
//     placement warnings.
//   - error: Wraps ErrInvalidConfiguration when opts can never produce a
//     valid run. No randomness is consumed in that case.
//
// # Algorithm
//
//  1. Draw the number of slots uniformly from [MinShapes, MaxShapes]
//  2. Draw one color per slot (channel by channel)
//  3. For each slot, choose a fitter, then up to Trials times:
//     - draw an anchor column and row
//     - ask the fitter for a shape at that anchor; skip the trial if it
//     cannot fit
//     - accept the shape if overlap is allowed or none of its pixels is
//     already occupied
//  4. On acceptance paint the slot color, mark the pixels occupied, record
//     the label and move to the next slot
//  5. A slot that exhausts its trials is skipped with a warning
//
// The first accepted trial wins and accepted shapes are never moved, so the
// result may hold fewer shapes than Requested.
func Generate(opts Options) (*Result, error) {
	p, err := opts.validate()
	if err != nil {
		return nil, err
	}

	seed := RandomSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := &run{
		plan:   p,
		opts:   opts,
		stream: NewStream(seed),
		canvas: NewCanvas(p.extent.Rows, p.extent.Cols, p.channels),
		mask:   NewMask(p.extent),
	}

	count := r.stream.IntRange(opts.MinShapes, opts.MaxShapes)
	colors, err := SampleColors(count, p.channels, p.intensity, r.stream)
	if err != nil {
		return nil, err
	}

	r.result = &Result{
		Canvas:    r.canvas,
		Labels:    make([]Label, 0),
		Shapes:    make([]Shape, 0),
		Colors:    colors,
		Requested: count,
		Seed:      seed,
	}

	for slot := 0; slot < count; slot++ {
		fitter := p.selector.Select(r.stream)

		placed, err := r.place(slot, fitter, colors[slot])
		if err != nil {
			return nil, err
		}
		if !placed {
			warning := &PlacementExhaustedError{Slot: slot, Category: fitter.Category(), Trials: opts.Trials}
			logger.Printf("Warning: %v", warning)
			r.result.Warnings = append(r.result.Warnings, warning)
		}
	}

	return r.result, nil
}

// run is the mutable state of one Generate call.
type run struct {
	plan   *plan
	opts   Options
	stream *Stream
	canvas *Canvas
	mask   *Mask
	result *Result
}

// place runs the trial loop for one slot and commits the first acceptable
// proposal. It reports whether the slot was placed.
func (r *run) place(slot int, fitter Fitter, color []uint8) (bool, error) {
	extent := r.plan.extent

	for trial := 0; trial < r.opts.Trials; trial++ {
		col := r.stream.IntN(extent.Cols)
		row := r.stream.IntN(extent.Rows)

		proposal, err := fitter.Fit(raster.Pixel{Row: row, Col: col}, extent, r.plan.size, r.stream)
		if errors.Is(err, ErrGeometryInfeasible) {
			continue
		}
		if err != nil {
			return false, err
		}

		if !r.opts.AllowOverlap && r.mask.Any(proposal.Pixels) {
			continue
		}

		r.canvas.Paint(proposal.Pixels, color)
		r.mask.Claim(proposal.Pixels)
		r.result.Labels = append(r.result.Labels, proposal.Label)
		r.result.Shapes = append(r.result.Shapes, Shape{
			Slot:      slot,
			Label:     proposal.Label,
			Intensity: color,
			Pixels:    len(proposal.Pixels),
		})
		return true, nil
	}
	return false, nil
}
