package shapes

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Stream is the single source of randomness for one generation run.
//
// Integer draws go through math/rand/v2; real-valued and weighted draws use
// gonum distributions backed by the same PCG source, so the whole run is a
// pure function of the seed.
type Stream struct {
	src *rand.PCG
	rng *rand.Rand
}

// NewStream returns a stream seeded with seed.
func NewStream(seed uint64) *Stream {
	src := rand.NewPCG(seed, seed)
	return &Stream{src: src, rng: rand.New(src)}
}

// RandomSeed returns a fresh seed from the runtime's global generator.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// IntN returns a uniform integer in [0, n). It panics if n <= 0.
func (s *Stream) IntN(n int) int {
	return s.rng.IntN(n)
}

// IntRange returns a uniform integer in [lo, hi], both inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo+1)
}

// Float64Range returns a uniform real in [lo, hi).
func (s *Stream) Float64Range(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}

// Choice returns an index drawn with probability proportional to weights.
// Weights must be non-negative with a positive sum.
func (s *Stream) Choice(weights []float64) int {
	return int(distuv.NewCategorical(weights, s.src).Rand())
}
