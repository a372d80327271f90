package shapes

import (
	"math"
	"slices"
	"sort"
)

// Scenario names a fixed probability distribution over shape categories.
type Scenario string

// Built-in scenarios.
const (
	// ScenarioAllHalo mixes all default categories, favoring rectangles and
	// circles.
	ScenarioAllHalo Scenario = "all-halo"
	// ScenarioAllCore mixes all default categories, dominated by circles.
	ScenarioAllCore Scenario = "all-core"
	// ScenarioRectangleTriangle picks rectangles and triangles uniformly.
	ScenarioRectangleTriangle Scenario = "rectangle-triangle"
	// ScenarioCircle places circles only.
	ScenarioCircle Scenario = "circle"
	// ScenarioEllipse places ellipses only and requires the ellipse fitter.
	ScenarioEllipse Scenario = "ellipse"
)

// DefaultScenario is used when Options.Scenario is empty.
const DefaultScenario = ScenarioAllHalo

// Distribution is a weighted set of categories. Weights need not sum to 1;
// an empty Weights slice means uniform.
type Distribution struct {
	Categories []string  `json:"categories" yaml:"categories"`
	Weights    []float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// scenarios is the closed table of built-in scenarios. Adding a scenario is
// a new row here.
var scenarios = map[Scenario]Distribution{
	ScenarioAllHalo: {
		Categories: []string{CategoryRectangle, CategoryCircle, CategoryTriangle},
		Weights:    []float64{0.4, 0.4, 0.2},
	},
	ScenarioAllCore: {
		Categories: []string{CategoryRectangle, CategoryTriangle, CategoryCircle},
		Weights:    []float64{0.1, 0.1, 0.8},
	},
	ScenarioRectangleTriangle: {
		Categories: []string{CategoryRectangle, CategoryTriangle},
	},
	ScenarioCircle: {
		Categories: []string{CategoryCircle},
	},
	ScenarioEllipse: {
		Categories: []string{CategoryEllipse},
	},
}

// LookupScenario returns a copy of the scenario's distribution.
func LookupScenario(name Scenario) (Distribution, error) {
	d, ok := scenarios[name]
	if !ok {
		return Distribution{}, invalidf("unknown scenario %q", name)
	}
	return Distribution{
		Categories: slices.Clone(d.Categories),
		Weights:    slices.Clone(d.Weights),
	}, nil
}

// ScenarioInfo describes a built-in scenario with normalized weights.
type ScenarioInfo struct {
	Name          Scenario           `json:"name"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Scenarios lists the built-in scenarios sorted by name.
func Scenarios() []ScenarioInfo {
	infos := make([]ScenarioInfo, 0, len(scenarios))
	for name, d := range scenarios {
		weights := d.normalized()
		probs := make(map[string]float64, len(d.Categories))
		for i, c := range d.Categories {
			probs[c] = weights[i]
		}
		infos = append(infos, ScenarioInfo{Name: name, Probabilities: probs})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// weights returns the distribution's weights, filling in uniform weights
// when none were given.
func (d Distribution) weights() []float64 {
	if len(d.Weights) > 0 {
		return d.Weights
	}
	w := make([]float64, len(d.Categories))
	for i := range w {
		w[i] = 1
	}
	return w
}

func (d Distribution) normalized() []float64 {
	w := slices.Clone(d.weights())
	var sum float64
	for _, v := range w {
		sum += v
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

func (d Distribution) validate() error {
	if len(d.Categories) == 0 {
		return invalidf("distribution has no categories")
	}
	if len(d.Weights) > 0 && len(d.Weights) != len(d.Categories) {
		return invalidf("distribution has %d categories but %d weights", len(d.Categories), len(d.Weights))
	}
	var sum float64
	for _, w := range d.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return invalidf("distribution weight %v is not a finite non-negative number", w)
		}
		sum += w
	}
	if len(d.Weights) > 0 && sum <= 0 {
		return invalidf("distribution weights sum to %v", sum)
	}
	return nil
}

// Registry maps category names to fitters. It is built once and never
// modified; WithEllipse returns a new registry.
type Registry struct {
	fitters map[string]Fitter
	order   []string
}

// NewRegistry builds a registry from fitters. Duplicate categories are an
// invalid configuration.
func NewRegistry(fitters ...Fitter) (*Registry, error) {
	r := &Registry{fitters: make(map[string]Fitter, len(fitters))}
	for _, f := range fitters {
		name := f.Category()
		if _, dup := r.fitters[name]; dup {
			return nil, invalidf("duplicate fitter for category %q", name)
		}
		r.fitters[name] = f
		r.order = append(r.order, name)
	}
	return r, nil
}

// DefaultRegistry returns the active categories: rectangle, circle and
// triangle.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry(Rectangle{}, Circle{}, Triangle{})
	return r
}

// WithEllipse returns a copy of r that also contains the ellipse fitter.
// If r already has one, r is returned unchanged.
func (r *Registry) WithEllipse() *Registry {
	if _, ok := r.fitters[CategoryEllipse]; ok {
		return r
	}
	fitters := make([]Fitter, 0, len(r.order)+1)
	for _, name := range r.order {
		fitters = append(fitters, r.fitters[name])
	}
	next, _ := NewRegistry(append(fitters, Ellipse{})...)
	return next
}

// Lookup returns the fitter registered for category.
func (r *Registry) Lookup(category string) (Fitter, bool) {
	f, ok := r.fitters[category]
	return f, ok
}

// Categories lists the registered categories in registration order.
func (r *Registry) Categories() []string {
	return slices.Clone(r.order)
}

// Selector chooses the fitter for each shape slot.
type Selector struct {
	pinned  Fitter
	fitters []Fitter
	weights []float64
}

// NewSelector resolves a pinned category or a distribution against the
// registry.
//
// If pinned is non-empty it must name a registered category and every slot
// uses that fitter without consuming randomness. Otherwise every category in
// dist must be registered; Select then draws one fitter per call.
func NewSelector(registry *Registry, pinned string, dist Distribution) (*Selector, error) {
	if pinned != "" {
		f, ok := registry.Lookup(pinned)
		if !ok {
			return nil, invalidf("unknown shape category %q (available: %v)", pinned, registry.Categories())
		}
		return &Selector{pinned: f}, nil
	}

	if err := dist.validate(); err != nil {
		return nil, err
	}
	sel := &Selector{weights: slices.Clone(dist.weights())}
	for _, name := range dist.Categories {
		f, ok := registry.Lookup(name)
		if !ok {
			return nil, invalidf("category %q is not enabled (available: %v)", name, registry.Categories())
		}
		sel.fitters = append(sel.fitters, f)
	}
	return sel, nil
}

// Candidates returns every fitter Select can return.
func (sel *Selector) Candidates() []Fitter {
	if sel.pinned != nil {
		return []Fitter{sel.pinned}
	}
	out := make([]Fitter, 0, len(sel.fitters))
	for i, f := range sel.fitters {
		if sel.weights[i] > 0 {
			out = append(out, f)
		}
	}
	return out
}

// Select returns the fitter for the next slot.
func (sel *Selector) Select(s *Stream) Fitter {
	if sel.pinned != nil {
		return sel.pinned
	}
	return sel.fitters[s.Choice(sel.weights)]
}
