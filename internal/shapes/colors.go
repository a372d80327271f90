package shapes

// IntensityRange is an inclusive range of 8-bit channel intensities.
type IntensityRange struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

// DefaultIntensityRange keeps shapes distinguishable from the white
// background.
var DefaultIntensityRange = IntensityRange{Low: 0, High: 254}

// ColorTable holds one color per shape slot: ColorTable[slot][channel].
type ColorTable [][]uint8

// resolveIntensityRanges validates ranges and expands them to one range per
// channel. A nil or empty slice selects DefaultIntensityRange; a single range
// is shared by all channels.
func resolveIntensityRanges(channels int, ranges []IntensityRange) ([]IntensityRange, error) {
	if len(ranges) == 0 {
		ranges = []IntensityRange{DefaultIntensityRange}
	}
	for _, r := range ranges {
		if r.Low < 0 || r.Low > 255 || r.High < 0 || r.High > 255 {
			return nil, invalidf("intensity range must lie within (0, 255) interval, got (%d, %d)", r.Low, r.High)
		}
		if r.Low > r.High {
			return nil, invalidf("intensity range low %d exceeds high %d", r.Low, r.High)
		}
	}

	switch len(ranges) {
	case channels:
		return ranges, nil
	case 1:
		perChannel := make([]IntensityRange, channels)
		for i := range perChannel {
			perChannel[i] = ranges[0]
		}
		return perChannel, nil
	default:
		return nil, invalidf("got %d intensity ranges for %d channels", len(ranges), channels)
	}
}

// SampleColors draws count colors with the given number of channels.
//
// Parameters:
//   - count: Number of colors (one per shape slot).
//   - channels: Number of channels per color.
//   - ranges: Either one range shared by all channels or one per channel.
//     Empty selects DefaultIntensityRange.
//   - s: Random stream; count×channels integers are drawn channel by channel.
//
// Returns:
//   - ColorTable: count rows of channels values each.
//   - error: Wraps ErrInvalidConfiguration if any bound is outside [0, 255],
//     a range is inverted or the number of ranges does not match channels.
//     Nothing is drawn from s in that case.
func SampleColors(count, channels int, ranges []IntensityRange, s *Stream) (ColorTable, error) {
	perChannel, err := resolveIntensityRanges(channels, ranges)
	if err != nil {
		return nil, err
	}

	table := make(ColorTable, count)
	for i := range table {
		table[i] = make([]uint8, channels)
	}
	for ch, r := range perChannel {
		for i := 0; i < count; i++ {
			table[i][ch] = uint8(s.IntRange(r.Low, r.High))
		}
	}
	return table, nil
}
