package core

import (
	"math"
	"strconv"
)

// FormatPx renders a pixel measurement for messages: whole numbers without a
// fraction, everything else with one decimal.
func FormatPx(v float64) string {
	if math.Abs(v-math.Round(v)) < 0.05 {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
