package pricing

import (
	"math"
	"sort"
)

// Distribution summarizes a set of comparable prices. Mode is the most
// frequent price after rounding each to the nearest integer; median, mean,
// and stdDev are reported to 2 decimals.
type Distribution struct {
	Median float64 `json:"median"`
	Mode   float64 `json:"mode"`
	StdDev float64 `json:"stdDev"`
	Mean   float64 `json:"mean"`
}

// AnalyzePriceDistribution computes median, mode, mean, and population
// standard deviation over the given prices. Empty input yields all zeros.
// Mode frequency ties break in favor of the value first encountered in the
// input, so results are deterministic for a given input order.
func AnalyzePriceDistribution(prices []float64) Distribution {
	if len(prices) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	n := len(sorted)
	var median float64
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		median = sorted[n/2]
	}

	// Frequency counts keyed by integer-rounded price, with first-seen
	// order preserved so ties break deterministically.
	counts := make(map[int]int, n)
	order := make([]int, 0, n)
	for _, p := range prices {
		r := int(math.Round(p))
		if _, seen := counts[r]; !seen {
			order = append(order, r)
		}
		counts[r]++
	}

	var mode, best int
	for _, r := range order {
		if counts[r] > best {
			mode, best = r, counts[r]
		}
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / float64(n)

	var variance float64
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(n)

	return Distribution{
		Median: round2(median),
		Mode:   float64(mode),
		StdDev: round2(math.Sqrt(variance)),
		Mean:   round2(mean),
	}
}
