package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/metrics"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// LiveProvider produces snapshots from a live search backend, broadening the
// query until the result is sufficient to price from.
type LiveProvider struct {
	searcher  Searcher
	limiter   *Limiter
	minSold   int
	minActive int
	log       *slog.Logger
}

// LiveOption configures the LiveProvider.
type LiveOption func(*LiveProvider)

// WithLiveLogger sets the provider's logger.
func WithLiveLogger(l *slog.Logger) LiveOption {
	return func(p *LiveProvider) {
		p.log = l
	}
}

// WithLiveThresholds overrides the sufficiency thresholds.
func WithLiveThresholds(minSold, minActive int) LiveOption {
	return func(p *LiveProvider) {
		p.minSold = minSold
		p.minActive = minActive
	}
}

// NewLiveProvider creates a provider backed by the given searcher and rate
// limiter.
func NewLiveProvider(searcher Searcher, limiter *Limiter, opts ...LiveOption) *LiveProvider {
	p := &LiveProvider{
		searcher:  searcher,
		limiter:   limiter,
		minSold:   DefaultMinSoldListings,
		minActive: DefaultMinActiveListings,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (*LiveProvider) Name() string {
	return "live"
}

// Available reports whether a search backend is wired in.
func (p *LiveProvider) Available() bool {
	return p.searcher != nil
}

// Snapshot runs the broadening ladder: each level's result wins outright if
// it is sufficient; otherwise it is kept only when it strictly improves sold
// coverage over the prior level. Upstream failures at one level fall through
// to the next; if every level fails the snapshot carries the "error" source
// rather than an error return. An exhausted daily budget with no data yet is
// the one hard failure.
func (p *LiveProvider) Snapshot(
	ctx context.Context,
	item domain.ItemIdentification,
	cond domain.Condition,
) (*domain.MarketSnapshot, error) {
	levels := buildQueryLevels(item, cond)
	if len(levels) == 0 {
		return &domain.MarketSnapshot{
			SoldCount:   domain.CountUnavailable,
			ActiveCount: domain.CountUnavailable,
			DataSource:  domain.SourceNoResults,
			SourceNote:  "item identification had no searchable terms",
		}, nil
	}

	var (
		best      *domain.MarketSnapshot
		bestDepth int
		lastErr   error
	)

	for i, lvl := range levels {
		if err := p.limiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyBudgetExhausted) {
				metrics.SearchBudgetHits.Inc()
			}
			if best != nil {
				p.log.Warn("search limited, keeping prior level result", "error", err)
				break
			}
			return nil, fmt.Errorf("market search: %w", err)
		}

		metrics.SearchCallsTotal.Inc()
		metrics.SearchDailyUsage.Set(float64(p.limiter.Used()))

		result, err := p.searcher.Search(ctx, lvl.query)
		if err != nil {
			metrics.SearchErrorsTotal.Inc()
			p.log.Warn("search level failed",
				"level", i+1,
				"query", lvl.query,
				"error", err)
			lastErr = err
			continue
		}

		p.log.Debug("search level result",
			"level", i+1,
			"query", lvl.query,
			"sold", result.SoldCount,
			"active", result.ActiveCount)

		if !result.HasData() {
			continue
		}

		snap := snapshotFromResult(result, lvl)
		if Sufficient(result.SoldCount, result.ActiveCount, p.minSold, p.minActive) {
			metrics.SearchFallbackDepth.Observe(float64(i + 1))
			return snap, nil
		}

		if best == nil || result.SoldCount > best.SoldCount {
			best = snap
			bestDepth = i + 1
		}
	}

	if best != nil {
		best.SourceNote += " (below sufficiency threshold)"
		metrics.SearchFallbackDepth.Observe(float64(bestDepth))
		return best, nil
	}

	if lastErr != nil {
		return &domain.MarketSnapshot{
			SoldCount:   domain.CountUnavailable,
			ActiveCount: domain.CountUnavailable,
			DataSource:  domain.SourceError,
			SourceNote:  fmt.Sprintf("all query levels failed: %v", lastErr),
		}, nil
	}

	return &domain.MarketSnapshot{
		DataSource: domain.SourceNoResults,
		SourceNote: "no comparable listings found at any query level",
	}, nil
}

func snapshotFromResult(r *SearchResult, lvl queryLevel) *domain.MarketSnapshot {
	return &domain.MarketSnapshot{
		SoldCount:      r.SoldCount,
		ActiveCount:    r.ActiveCount,
		AvgSoldPrice:   r.AvgSoldPrice,
		AvgActivePrice: r.AvgActivePrice,
		PriceRange:     domain.PriceRange{Low: r.PriceLow, High: r.PriceHigh},
		DataSource:     lvl.source,
		SourceNote:     lvl.note,
	}
}
