// Package pricing implements the price recommendation engine: pure functions
// that turn a market snapshot into a structured price recommendation, plus
// supporting numeric utilities for rounding, outlier filtering, and price
// distribution statistics. Nothing in this package performs I/O or holds
// state, so every function is safe for concurrent use.
package pricing

import (
	"math"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// Base price weighting and adjustment policy.
const (
	soldWeight         = 0.70
	activeWeight       = 0.30
	activeOnlyDiscount = 0.90 // active listings are asking prices, not realized sales

	oversupplyRatio  = 0.3
	oversupplyFactor = 0.92
	demandRatio      = 2.0
	demandFactor     = 1.05

	quickSaleFactor = 0.85
	premiumFactor   = 1.15

	highConfidenceMinSold = 20
	lowConfidenceMaxSold  = 5
)

// Methodology strings recorded in the recommendation's audit trail.
const (
	methodWeightedAverage  = "weighted average, 70% sold / 30% active"
	methodSoldOnly         = "based on sold listings only"
	methodActiveDiscounted = "based on active listings, discounted 10%"
	methodHighCompetition  = "adjusted down 8% for high competition"
	methodStrongDemand     = "adjusted up 5% for strong demand"
	methodInsufficientData = "insufficient data for price calculation"
)

// CalculateSuggestedPrice derives a price recommendation from a market
// snapshot. It never fails: a snapshot with no usable price data yields a
// recommendation with nil prices, low confidence, and an explanatory
// methodology entry. Unavailable (negative sentinel) counts are treated as 0.
func CalculateSuggestedPrice(snap domain.MarketSnapshot) domain.PriceRecommendation {
	sold := countOrZero(snap.SoldCount)
	active := countOrZero(snap.ActiveCount)

	rec := domain.PriceRecommendation{
		Confidence:  domain.ConfidenceLow,
		Methodology: []string{},
	}

	var base float64
	switch {
	case snap.AvgSoldPrice > 0 && snap.AvgActivePrice > 0:
		base = soldWeight*snap.AvgSoldPrice + activeWeight*snap.AvgActivePrice
		rec.Methodology = append(rec.Methodology, methodWeightedAverage)
	case snap.AvgSoldPrice > 0:
		base = snap.AvgSoldPrice
		rec.Methodology = append(rec.Methodology, methodSoldOnly)
	case snap.AvgActivePrice > 0:
		base = activeOnlyDiscount * snap.AvgActivePrice
		rec.Methodology = append(rec.Methodology, methodActiveDiscounted)
	default:
		rec.Methodology = append(rec.Methodology, methodInsufficientData)
		return rec
	}

	// Neutral ratio when the active-listing count is unknown or zero,
	// avoiding division by zero.
	ratio := 1.0
	if active > 0 {
		ratio = float64(sold) / float64(active)
	}

	factor := 1.0
	switch {
	case ratio < oversupplyRatio:
		factor = oversupplyFactor
		rec.Methodology = append(rec.Methodology, methodHighCompetition)
	case ratio > demandRatio:
		factor = demandFactor
		rec.Methodology = append(rec.Methodology, methodStrongDemand)
	}

	adjusted := base * factor

	suggested := RoundToNearestSensible(adjusted)
	quickSale := RoundToNearestSensible(adjusted * quickSaleFactor)
	premium := RoundToNearestSensible(adjusted * premiumFactor)
	rec.SuggestedPrice = &suggested
	rec.QuickSalePrice = &quickSale
	rec.PremiumPrice = &premium

	rec.Confidence = gradeConfidence(sold, snap.DataSource)

	rec.PriceBreakdown = domain.PriceBreakdown{
		AvgSoldContribution:   round2(snap.AvgSoldPrice * soldWeight),
		AvgActiveContribution: round2(snap.AvgActivePrice * activeWeight),
		MarketAdjustment:      factor,
		CompetitionRatio:      round2(ratio),
	}

	return rec
}

// gradeConfidence applies the tiering policy: high needs both strong sold
// coverage and a top-tier source; low is triggered by thin sold coverage or
// a category-level source; everything else is medium. High is evaluated first.
func gradeConfidence(sold int, source domain.DataSource) domain.Confidence {
	if sold >= highConfidenceMinSold && source.TopTier() {
		return domain.ConfidenceHigh
	}
	if sold < lowConfidenceMaxSold || source.BottomTier() {
		return domain.ConfidenceLow
	}
	return domain.ConfidenceMedium
}

func countOrZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
