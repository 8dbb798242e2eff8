// Package layout computes print grids for uniformly sized card images:
// unit conversion, card pixel geometry, slot placement and pagination.
//
// Every function in this package is pure. Lengths and resolutions are
// assumed finite and non-negative; callers validate configuration with
// PageSpec.Validate and CardSpec.Validate before planning.
package layout

import "math"

// MillimetersPerInch is the exact length of one inch in millimeters.
const MillimetersPerInch = 25.4

// PointsPerInch is the PDF user-space unit density.
const PointsPerInch = 72.0

// MMToInches converts millimeters to inches without rounding.
func MMToInches(mm float64) float64 {
	return mm / MillimetersPerInch
}

// InchesToMM converts inches to millimeters without rounding.
func InchesToMM(in float64) float64 {
	return in * MillimetersPerInch
}

// InchesToPixels returns the real-valued pixel count for a length at dpi.
// Rounding is left to the caller.
func InchesToPixels(in, dpi float64) float64 {
	return in * dpi
}

// MMToPixels returns the real-valued pixel count for a length at dpi.
func MMToPixels(mm, dpi float64) float64 {
	return InchesToPixels(MMToInches(mm), dpi)
}

// RoundPixels rounds half away from zero. Used wherever a pixel size is a
// resize target that must match exactly.
func RoundPixels(px float64) int {
	return int(math.Round(px))
}

// TruncPixels truncates toward zero. Used for gaps so spacing never pushes
// a card off the page.
func TruncPixels(px float64) int {
	return int(px)
}
