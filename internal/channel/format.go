package channel

import (
	"math"
	"strconv"
)

// The calibration tool stores every numeric channel setting as a string and is
// sensitive to the exact shape, so these helpers fix one rendering per field.

// FormatDecimal renders v with at least one decimal place: 3 -> "3.0",
// -0.25 -> "-0.25".
func FormatDecimal(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatLevel renders a reference-level trim for customLevel.
func FormatLevel(db float64) string {
	return FormatDecimal(db)
}

// FormatCrossover renders a crossover for customCrossover, e.g. "80".
func FormatCrossover(hz int) string {
	return strconv.Itoa(hz)
}

// FormatMidrange renders the midrange compensation flag as "True" or "False".
func FormatMidrange(on bool) string {
	if on {
		return "True"
	}
	return "False"
}

// FormatRolloff renders a correction limit with exactly one decimal place,
// e.g. "1000.0".
func FormatRolloff(hz float64) string {
	return strconv.FormatFloat(hz, 'f', 1, 64)
}
