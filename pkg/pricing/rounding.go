package pricing

import "math"

// RoundToNearestSensible rounds a raw price to a psychologically natural
// price point, banded by magnitude: under 10 to the nearest 0.50, under 50
// to the nearest whole unit, under 100 to the nearest 5, under 500 to the
// nearest 10, and 500 or more to the nearest 25. Rounding within each band
// is half-away-from-zero. Total for any finite non-negative input.
func RoundToNearestSensible(price float64) float64 {
	switch {
	case price < 10:
		return roundToStep(price, 0.5)
	case price < 50:
		return roundToStep(price, 1)
	case price < 100:
		return roundToStep(price, 5)
	case price < 500:
		return roundToStep(price, 10)
	default:
		return roundToStep(price, 25)
	}
}

// roundToStep rounds price to the nearest multiple of step, half away from
// zero. Inputs are non-negative, so floor(x+0.5) implements the policy.
func roundToStep(price, step float64) float64 {
	return math.Floor(price/step+0.5) * step
}
