package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamDeterministic(t *testing.T) {
	a, b := NewStream(42), NewStream(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
		assert.Equal(t, a.Float64Range(-1, 1), b.Float64Range(-1, 1))
		assert.Equal(t, a.Choice([]float64{1, 2, 3}), b.Choice([]float64{1, 2, 3}))
	}
}

func TestStreamRanges(t *testing.T) {
	s := NewStream(7)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := s.IntRange(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true

		f := s.Float64Range(2, 2.5)
		assert.GreaterOrEqual(t, f, 2.0)
		assert.Less(t, f, 2.5)
	}
	assert.Len(t, seen, 3, "IntRange is inclusive on both ends")
	assert.Equal(t, 4, s.IntRange(4, 4))
}

func TestStreamChoiceSkipsZeroWeights(t *testing.T) {
	s := NewStream(1)
	for i := 0; i < 200; i++ {
		assert.NotEqual(t, 1, s.Choice([]float64{0.5, 0, 0.5}))
	}
}
