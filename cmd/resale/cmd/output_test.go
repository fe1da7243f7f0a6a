package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/Joshspeakman/ebay-resale-analyzer/internal/api/client"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/pricing"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/vision"
)

func floatPtr(v float64) *float64 { return &v }

func TestPrintReport(t *testing.T) {
	t.Parallel()

	report := &apiclient.AnalyzeReport{
		Item: domain.ItemIdentification{
			ItemName:          "Sony WH-1000XM5",
			Brand:             "Sony",
			Model:             "WH-1000XM5",
			Category:          "electronics",
			Subcategory:       "headphones",
			Confidence:        0.9,
			SpecialAttributes: []string{"original box"},
		},
		Market: domain.MarketSnapshot{
			SoldCount:      10,
			ActiveCount:    40,
			AvgSoldPrice:   100,
			AvgActivePrice: 80,
			DataSource:     domain.SourceExactMatch,
		},
		Recommendation: domain.PriceRecommendation{
			SuggestedPrice: floatPtr(85),
			QuickSalePrice: floatPtr(75),
			PremiumPrice:   floatPtr(100),
			Confidence:     domain.ConfidenceMedium,
			Methodology:    []string{"weighted average, 70% sold / 30% active"},
		},
		Usage: vision.TokenUsage{TotalTokens: 850, CostUSD: 0.00055},
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "Sony WH-1000XM5")
	assert.Contains(t, out, "electronics / headphones")
	assert.Contains(t, out, "90%")
	assert.Contains(t, out, "original box")
	assert.Contains(t, out, "$85.00")
	assert.Contains(t, out, "$75.00")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "medium")
	assert.Contains(t, out, "weighted average")
	assert.Contains(t, out, "850 tokens")
}

func TestPrintReport_UnavailableCounts(t *testing.T) {
	t.Parallel()

	report := &apiclient.AnalyzeReport{
		Item: domain.ItemIdentification{ItemName: "Mystery Item", Category: "other"},
		Market: domain.MarketSnapshot{
			SoldCount:   domain.CountUnavailable,
			ActiveCount: domain.CountUnavailable,
			DataSource:  domain.SourceEstimated,
			SourceNote:  "no category match",
		},
		Recommendation: domain.PriceRecommendation{Confidence: domain.ConfidenceLow},
	}

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "no category match")
	assert.Contains(t, out, "Suggested Price:")
	assert.Contains(t, out, "-")
}

func TestPrintStatistics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printStatistics(&buf, &apiclient.StatisticsResult{
		Distribution: pricing.Distribution{Median: 2.5, Mode: 3, StdDev: 1.29, Mean: 2.5},
		Filtered:     []float64{1, 2, 3, 4},
		OutlierCount: 1,
	}))

	out := buf.String()
	assert.Contains(t, out, "$2.50")
	assert.Contains(t, out, "Outliers Removed:")
}
