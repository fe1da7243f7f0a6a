package market

import "context"

// SearchResult is one query's worth of comparable listing data.
type SearchResult struct {
	SoldCount      int     `json:"soldCount"`
	ActiveCount    int     `json:"activeCount"`
	AvgSoldPrice   float64 `json:"avgSoldPrice"`
	AvgActivePrice float64 `json:"avgActivePrice"`
	PriceLow       float64 `json:"priceLow"`
	PriceHigh      float64 `json:"priceHigh"`
}

// HasData reports whether the search found any comparable listings.
func (r *SearchResult) HasData() bool {
	return r.SoldCount > 0 || r.ActiveCount > 0
}

// Searcher executes one marketplace comp search for a query string.
type Searcher interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
	Name() string
}
