// Package mathutil provides the small numeric helpers shared by the tax
// calculations and the tables.
package mathutil

import (
	"math"

	"github.com/iwvelando/taxcalc/pkg/constants"
)

// RoundTo rounds a value to the nearest multiple of precision. A non-positive
// precision returns the value unchanged.
func RoundTo(val, precision float64) float64 {
	if precision <= 0 {
		return val
	}
	if precision < 1 {
		inv := math.Round(1 / precision)
		return math.Round(val*inv) / inv
	}
	return math.Round(val/precision) * precision
}

// IsZero reports whether val is within a cent of zero.
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return max(lo, min(val, hi))
}

// Pos returns max(0, val).
func Pos(val float64) float64 {
	if val > 0 {
		return val
	}
	return 0
}

// Bool returns 1 for true and 0 for false.
func Bool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// CalculatePercentage returns value as a percentage of total, or zero when
// total is zero.
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * constants.PercentageMultiplier
}
