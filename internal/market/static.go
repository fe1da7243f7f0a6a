package market

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// categoryEstimates holds typical resale price ranges for a good-condition
// item per category. Coarse by design: the static provider exists so the
// engine always has an input when no live search backend is configured.
var categoryEstimates = map[string]domain.PriceRange{
	"electronics":       {Low: 25, High: 250},
	"headphones":        {Low: 20, High: 180},
	"smartphones":       {Low: 60, High: 450},
	"laptops":           {Low: 120, High: 700},
	"cameras":           {Low: 80, High: 500},
	"video games":       {Low: 10, High: 45},
	"game consoles":     {Low: 80, High: 350},
	"shoes":             {Low: 20, High: 120},
	"sneakers":          {Low: 30, High: 200},
	"clothing":          {Low: 10, High: 60},
	"watches":           {Low: 40, High: 400},
	"jewelry":           {Low: 25, High: 250},
	"tools":             {Low: 25, High: 150},
	"power tools":       {Low: 40, High: 220},
	"kitchen":           {Low: 15, High: 120},
	"furniture":         {Low: 40, High: 300},
	"sporting goods":    {Low: 20, High: 150},
	"musical instruments": {Low: 60, High: 500},
	"toys":              {Low: 10, High: 60},
	"books":             {Low: 5, High: 25},
	"collectibles":      {Low: 15, High: 200},
}

// defaultEstimate covers categories not in the table.
var defaultEstimate = domain.PriceRange{Low: 10, High: 80}

// conditionMultipliers scale the good-condition baseline.
var conditionMultipliers = map[domain.Condition]float64{
	domain.ConditionExcellent: 1.15,
	domain.ConditionGood:      1.0,
	domain.ConditionFair:      0.8,
	domain.ConditionPoor:      0.55,
	domain.ConditionUnknown:   1.0,
}

// StaticProvider estimates market data from the category table. It never
// fails and reports sold/active counts as unavailable, which keeps all
// recommendations built on it at low confidence.
type StaticProvider struct{}

// NewStaticProvider creates the static estimate provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Name returns the provider name.
func (*StaticProvider) Name() string {
	return "static"
}

// Available always reports true; the table needs no credentials or network.
func (*StaticProvider) Available() bool {
	return true
}

// Snapshot builds an estimate from the category table, preferring the
// narrower subcategory when it has an entry.
func (*StaticProvider) Snapshot(
	_ context.Context,
	item domain.ItemIdentification,
	cond domain.Condition,
) (*domain.MarketSnapshot, error) {
	estimate, key, found := lookupEstimate(item)

	mult, ok := conditionMultipliers[cond]
	if !ok {
		mult = 1.0
	}

	low := estimate.Low * mult
	high := estimate.High * mult
	avg := (low + high) / 2

	source := domain.SourceCategoryEstimate
	note := fmt.Sprintf("static estimate for category %q, condition %s", key, cond)
	if !found {
		source = domain.SourceEstimated
		note = fmt.Sprintf("generic static estimate (unrecognized category %q), condition %s", key, cond)
	}

	return &domain.MarketSnapshot{
		SoldCount:      domain.CountUnavailable,
		ActiveCount:    domain.CountUnavailable,
		AvgSoldPrice:   avg,
		AvgActivePrice: 0,
		PriceRange:     domain.PriceRange{Low: low, High: high},
		DataSource:     source,
		SourceNote:     note,
	}, nil
}

func lookupEstimate(item domain.ItemIdentification) (domain.PriceRange, string, bool) {
	sub := strings.ToLower(strings.TrimSpace(item.Subcategory))
	if est, ok := categoryEstimates[sub]; ok {
		return est, sub, true
	}

	cat := strings.ToLower(strings.TrimSpace(item.Category))
	if est, ok := categoryEstimates[cat]; ok {
		return est, cat, true
	}

	if cat == "" {
		cat = sub
	}
	return defaultEstimate, cat, false
}
