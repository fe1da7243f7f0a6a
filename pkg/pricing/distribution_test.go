package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzePriceDistribution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prices []float64
		want   Distribution
	}{
		{
			name:   "empty input",
			prices: nil,
			want:   Distribution{},
		},
		{
			name:   "worked example",
			prices: []float64{10, 20, 20, 30},
			want:   Distribution{Median: 20, Mode: 20, StdDev: 7.07, Mean: 20},
		},
		{
			name:   "single value",
			prices: []float64{42.5},
			want:   Distribution{Median: 42.5, Mode: 43, StdDev: 0, Mean: 42.5},
		},
		{
			name:   "odd length median",
			prices: []float64{30, 10, 20},
			want:   Distribution{Median: 20, Mode: 30, StdDev: 8.16, Mean: 20},
		},
		{
			name:   "even length median averages middles",
			prices: []float64{1, 2, 3, 100},
			want:   Distribution{Median: 2.5, Mode: 1, StdDev: 42.44, Mean: 26.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := AnalyzePriceDistribution(tt.prices)
			assert.InDelta(t, tt.want.Median, got.Median, 0.01)
			assert.InDelta(t, tt.want.Mode, got.Mode, 0.01)
			assert.InDelta(t, tt.want.StdDev, got.StdDev, 0.01)
			assert.InDelta(t, tt.want.Mean, got.Mean, 0.01)
		})
	}
}

func TestAnalyzePriceDistribution_ModeTieBreaksFirstSeen(t *testing.T) {
	t.Parallel()

	// 10 and 20 both appear twice; 10 is encountered first.
	got := AnalyzePriceDistribution([]float64{10, 20, 10, 20})
	assert.Equal(t, 10.0, got.Mode)

	// Reversed input flips the winner.
	got = AnalyzePriceDistribution([]float64{20, 10, 20, 10})
	assert.Equal(t, 20.0, got.Mode)
}

func TestAnalyzePriceDistribution_ModeRoundsToInteger(t *testing.T) {
	t.Parallel()

	// 19.6 and 20.4 both round to 20, making it the most frequent bucket.
	got := AnalyzePriceDistribution([]float64{19.6, 20.4, 35, 7})
	assert.Equal(t, 20.0, got.Mode)
}
