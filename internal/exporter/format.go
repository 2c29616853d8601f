package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a float64 value for CSV output at full precision.
// NaN marks a missing value and is written as an empty cell.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// cellFloat converts a float for a spreadsheet cell; NaN and infinities
// become empty cells since xlsx has no representation for them
func cellFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
