package pricing

import "sort"

// RemoveOutliers filters prices falling outside 1.5×IQR of the positional
// quartiles. Fewer than 4 values pass through unchanged: too little data to
// form quartiles reliably. Quartiles are taken at floor(n*0.25) and
// floor(n*0.75) of the sorted values, not interpolated. The returned slice
// preserves the original (unsorted) relative order.
func RemoveOutliers(prices []float64) ([]float64, int) {
	if len(prices) < 4 {
		out := make([]float64, len(prices))
		copy(out, prices)
		return out, 0
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	n := len(sorted)
	q1 := sorted[int(float64(n)*0.25)]
	q3 := sorted[int(float64(n)*0.75)]
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	filtered := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p >= lower && p <= upper {
			filtered = append(filtered, p)
		}
	}

	return filtered, len(prices) - len(filtered)
}
