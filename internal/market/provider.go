// Package market produces MarketSnapshots for identified items, either from
// live LLM-driven web search with query broadening or from static category
// estimates.
package market

import (
	"context"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// Default sufficiency thresholds for search results.
const (
	DefaultMinSoldListings   = 3
	DefaultMinActiveListings = 5
)

// Provider turns an identified item into a market snapshot. Implementations
// must return a snapshot or a taxonomy error within bounded time; upstream
// empty results become "no-results"/"error" snapshots, not errors.
type Provider interface {
	Snapshot(ctx context.Context, item domain.ItemIdentification, cond domain.Condition) (*domain.MarketSnapshot, error)
	Available() bool
	Name() string
}

// Sufficient reports whether a search result has enough coverage to price
// from: minSold sold comps, or at least one sale alongside minActive active
// listings.
func Sufficient(sold, active, minSold, minActive int) bool {
	return sold >= minSold || (sold >= 1 && active >= minActive)
}
