package monitor

import (
	"math"
	"strings"
)

// SparklineWidth is the number of most recent values a sparkline renders.
const SparklineWidth = 10

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// SparklineLevels maps percentages onto levels 0..7 using round(7*v/100).
// Values are clamped to [0,100] first and only the last SparklineWidth
// values are kept. Unlike a min/max-normalised sparkline the scale is
// absolute, so a flat 50% series and a flat 90% series look different.
func SparklineLevels(values []int) []int {
	if len(values) > SparklineWidth {
		values = values[len(values)-SparklineWidth:]
	}

	top := len(sparklineBlockRunes) - 1
	levels := make([]int, len(values))
	for i, v := range values {
		v = clampPercent(v)
		levels[i] = int(math.Round(float64(top) * float64(v) / 100))
	}
	return levels
}

// SparklineGlyphs converts levels into block characters.
// Out-of-range levels are clamped.
func SparklineGlyphs(levels []int) string {
	var sb strings.Builder
	sb.Grow(len(levels) * 3)

	top := len(sparklineBlockRunes) - 1
	for _, l := range levels {
		if l < 0 {
			l = 0
		} else if l > top {
			l = top
		}
		sb.WriteRune(sparklineBlockRunes[l])
	}
	return sb.String()
}

// Sparkline renders values straight to glyphs.
func Sparkline(values []int) string {
	return SparklineGlyphs(SparklineLevels(values))
}

func clampPercent(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
