package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleColors_ChannelMajor(t *testing.T) {
	ranges := []IntensityRange{{Low: 0, High: 100}, {Low: 150, High: 250}}

	table, err := SampleColors(3, 2, ranges, NewStream(99))
	require.NoError(t, err)
	require.Len(t, table, 3)

	// The same stream consumed channel by channel must reproduce the table.
	s := NewStream(99)
	for ch, r := range ranges {
		for i := 0; i < 3; i++ {
			assert.Equal(t, uint8(s.IntRange(r.Low, r.High)), table[i][ch], "slot %d channel %d", i, ch)
		}
	}
}

func TestSampleColors_Bounds(t *testing.T) {
	table, err := SampleColors(50, 3, []IntensityRange{{Low: 10, High: 20}}, NewStream(3))
	require.NoError(t, err)

	for _, row := range table {
		require.Len(t, row, 3)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, uint8(10))
			assert.LessOrEqual(t, v, uint8(20))
		}
	}
}

func TestSampleColors_DegenerateRange(t *testing.T) {
	table, err := SampleColors(4, 1, []IntensityRange{{Low: 255, High: 255}}, NewStream(3))
	require.NoError(t, err)
	for _, row := range table {
		assert.Equal(t, []uint8{255}, row)
	}
}

func TestSampleColors_Default(t *testing.T) {
	table, err := SampleColors(100, 3, nil, NewStream(5))
	require.NoError(t, err)
	for _, row := range table {
		for _, v := range row {
			assert.LessOrEqual(t, v, uint8(254))
		}
	}
}

func TestSampleColors_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		ranges   []IntensityRange
	}{
		{"high above 255", 3, []IntensityRange{{Low: 0, High: 256}}},
		{"negative low", 1, []IntensityRange{{Low: -1, High: 10}}},
		{"inverted", 1, []IntensityRange{{Low: 20, High: 10}}},
		{"wrong count", 3, []IntensityRange{{Low: 0, High: 10}, {Low: 0, High: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColors(5, tt.channels, tt.ranges, NewStream(1))
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}
