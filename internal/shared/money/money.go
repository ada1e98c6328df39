package money

import "math"

// Round2 rounds to 2 decimal places, half away from zero. Monetary values are
// rounded only at the point of persistence/response, not mid-computation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
