// Package domain defines the core business types for the resale analyzer.
package domain

import "strings"

// Condition represents the normalized physical condition of an item.
type Condition string

// Condition constants.
const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
	ConditionUnknown   Condition = "unknown"
)

// conditionMap maps user- and marketplace-supplied condition strings to
// normalized domain conditions.
var conditionMap = map[string]Condition{
	// normalized enum values (identity mappings)
	"excellent": ConditionExcellent,
	"good":      ConditionGood,
	"fair":      ConditionFair,
	"poor":      ConditionPoor,
	"unknown":   ConditionUnknown,
	// common variants
	"new":            ConditionExcellent,
	"brand new":      ConditionExcellent,
	"factory sealed": ConditionExcellent,
	"like new":       ConditionExcellent,
	"like_new":       ConditionExcellent,
	"mint":           ConditionExcellent,
	"open box":       ConditionExcellent,
	"barely used":    ConditionExcellent,
	"very good":      ConditionGood,
	"used":           ConditionGood,
	"pre-owned":      ConditionGood,
	"gently used":    ConditionGood,
	"refurbished":    ConditionGood,
	"acceptable":     ConditionFair,
	"worn":           ConditionFair,
	"heavily used":   ConditionPoor,
	"damaged":        ConditionPoor,
	"for parts":      ConditionPoor,
	"parts only":     ConditionPoor,
	"not working":    ConditionPoor,
	"as-is":          ConditionPoor,
}

// NormalizeCondition maps a raw condition string to a normalized Condition.
// Returns ConditionUnknown if the input doesn't match any known condition.
func NormalizeCondition(raw string) Condition {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ConditionUnknown
	}

	if c, ok := conditionMap[normalized]; ok {
		return c
	}

	return ConditionUnknown
}

// DataSource labels how closely a market snapshot matches the identified item.
type DataSource string

// Data source constants, ordered roughly from most to least specific.
const (
	SourceLive             DataSource = "live"
	SourceExactMatch       DataSource = "exact-match"
	SourceLimited          DataSource = "limited"
	SourceSimilarItems     DataSource = "similar-items"
	SourceCategoryEstimate DataSource = "category-estimate"
	SourceEstimated        DataSource = "estimated"
	SourceNoResults        DataSource = "no-results"
	SourceError            DataSource = "error"
	SourceUnavailable      DataSource = "unavailable"
)

// TopTier reports whether the source is specific enough to support a
// high-confidence recommendation.
func (s DataSource) TopTier() bool {
	return s == SourceExactMatch || s == SourceLive
}

// BottomTier reports whether the source is a category-level guess that caps
// recommendation confidence at low.
func (s DataSource) BottomTier() bool {
	return s == SourceCategoryEstimate || s == SourceEstimated
}

// Confidence grades how much trust to place in a price recommendation.
type Confidence string

// Confidence constants.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// CountUnavailable is the sentinel for sold/active counts the market data
// source could not determine. Distinct from 0, which means "known to be none".
const CountUnavailable = -1

// ItemIdentification is the structured result of identifying an item from
// photographs. Produced by the vision collaborator; confidence is always
// clamped into [0,1] by the producer.
type ItemIdentification struct {
	ItemName          string            `json:"itemName"`
	Brand             string            `json:"brand"`
	Model             string            `json:"model,omitempty"`
	Category          string            `json:"category"`
	Subcategory       string            `json:"subcategory,omitempty"`
	Confidence        float64           `json:"confidence"`
	Attributes        map[string]string `json:"attributes,omitempty"`
	SpecialAttributes []string          `json:"specialAttributes,omitempty"`
}

// PriceRange is the observed low/high bound of comparable prices.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// MarketSnapshot captures comparable sold/active listing data for one item.
// Constructed once per analysis request, immutable, never persisted.
type MarketSnapshot struct {
	SoldCount      int        `json:"soldCount"`
	ActiveCount    int        `json:"activeCount"`
	AvgSoldPrice   float64    `json:"avgSoldPrice"`
	AvgActivePrice float64    `json:"avgActivePrice"`
	PriceRange     PriceRange `json:"priceRange"`
	DataSource     DataSource `json:"dataSource"`
	SourceNote     string     `json:"sourceNote,omitempty"`
}

// HasPriceData reports whether any price can be derived from the snapshot.
// When false the pricing engine returns its defined insufficient-data result.
func (s *MarketSnapshot) HasPriceData() bool {
	return s.AvgSoldPrice > 0 || s.AvgActivePrice > 0
}

// PriceBreakdown exposes the engine's intermediate numbers for transparency.
type PriceBreakdown struct {
	AvgSoldContribution   float64 `json:"avgSoldContribution"`
	AvgActiveContribution float64 `json:"avgActiveContribution"`
	MarketAdjustment      float64 `json:"marketAdjustment"`
	CompetitionRatio      float64 `json:"competitionRatio"`
}

// PriceRecommendation is the pricing engine's output. All three price points
// are nil when the snapshot carried no usable price data.
type PriceRecommendation struct {
	SuggestedPrice *float64       `json:"suggestedPrice"`
	QuickSalePrice *float64       `json:"quickSalePrice"`
	PremiumPrice   *float64       `json:"premiumPrice"`
	Confidence     Confidence     `json:"confidence"`
	Methodology    []string       `json:"methodology"`
	OutlierCount   int            `json:"outlierCount"`
	PriceBreakdown PriceBreakdown `json:"priceBreakdown"`
}

// AnalysisReport is the full result of one analyze request: the identified
// item, the market snapshot it produced, and the derived recommendation.
type AnalysisReport struct {
	Item           ItemIdentification  `json:"item"`
	Market         MarketSnapshot      `json:"market"`
	Recommendation PriceRecommendation `json:"recommendation"`
}
