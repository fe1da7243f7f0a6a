package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// fakeSearcher returns canned results keyed by query, in call order.
type fakeSearcher struct {
	results map[string]*SearchResult
	errs    map[string]error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (*SearchResult, error) {
	f.queries = append(f.queries, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return &SearchResult{}, nil
}

func (*fakeSearcher) Name() string { return "fake" }

func testItem() domain.ItemIdentification {
	return domain.ItemIdentification{
		ItemName: "Sony WH-1000XM5",
		Brand:    "Sony",
		Model:    "WH-1000XM5",
		Category: "electronics",
	}
}

func testLimiter() *Limiter {
	return NewLimiter(1000, 100, 1000)
}

func TestLiveProvider_ExactMatchSufficient(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		results: map[string]*SearchResult{
			"Sony WH-1000XM5 good": {
				SoldCount: 12, ActiveCount: 30,
				AvgSoldPrice: 210, AvgActivePrice: 230,
				PriceLow: 150, PriceHigh: 280,
			},
		},
	}

	p := NewLiveProvider(searcher, testLimiter())
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sony WH-1000XM5 good"}, searcher.queries, "sufficient first level must stop the ladder")
	assert.Equal(t, domain.SourceExactMatch, snap.DataSource)
	assert.Equal(t, 12, snap.SoldCount)
	assert.Equal(t, 210.0, snap.AvgSoldPrice)
	assert.Equal(t, domain.PriceRange{Low: 150, High: 280}, snap.PriceRange)
	assert.Contains(t, snap.SourceNote, "exact query")
}

func TestLiveProvider_BroadensUntilSufficient(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		results: map[string]*SearchResult{
			"Sony WH-1000XM5 good": {SoldCount: 1, ActiveCount: 2, AvgSoldPrice: 200},
			"Sony WH-1000XM5":      {SoldCount: 8, ActiveCount: 20, AvgSoldPrice: 190, AvgActivePrice: 205},
		},
	}

	p := NewLiveProvider(searcher, testLimiter())
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err)

	assert.Len(t, searcher.queries, 2)
	assert.Equal(t, domain.SourceSimilarItems, snap.DataSource)
	assert.Equal(t, 8, snap.SoldCount)
	assert.Contains(t, snap.SourceNote, "broadened query")
}

func TestLiveProvider_KeepsBestInsufficientResult(t *testing.T) {
	t.Parallel()

	// No level reaches sufficiency; level 2's 2 sold beats level 1's 1 sold,
	// and level 3's 0 sold does not displace it.
	searcher := &fakeSearcher{
		results: map[string]*SearchResult{
			"Sony WH-1000XM5 good": {SoldCount: 1, ActiveCount: 1, AvgSoldPrice: 220},
			"Sony WH-1000XM5":      {SoldCount: 2, ActiveCount: 3, AvgSoldPrice: 195},
			"Sony electronics":     {SoldCount: 0, ActiveCount: 2, AvgActivePrice: 170},
		},
	}

	p := NewLiveProvider(searcher, testLimiter())
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err)

	assert.Len(t, searcher.queries, 3, "insufficient results must exhaust the ladder")
	assert.Equal(t, domain.SourceSimilarItems, snap.DataSource)
	assert.Equal(t, 2, snap.SoldCount)
	assert.Contains(t, snap.SourceNote, "below sufficiency threshold")
}

func TestLiveProvider_LevelErrorFallsThrough(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		errs: map[string]error{
			"Sony WH-1000XM5 good": errors.New("upstream timeout"),
		},
		results: map[string]*SearchResult{
			"Sony WH-1000XM5": {SoldCount: 6, ActiveCount: 14, AvgSoldPrice: 188},
		},
	}

	p := NewLiveProvider(searcher, testLimiter())
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceSimilarItems, snap.DataSource)
	assert.Equal(t, 6, snap.SoldCount)
}

func TestLiveProvider_AllLevelsFail(t *testing.T) {
	t.Parallel()

	boom := errors.New("search backend down")
	searcher := &fakeSearcher{
		errs: map[string]error{
			"Sony WH-1000XM5 good": boom,
			"Sony WH-1000XM5":      boom,
			"Sony electronics":     boom,
		},
	}

	p := NewLiveProvider(searcher, testLimiter())
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err, "total failure becomes an error snapshot, not an error return")

	assert.Equal(t, domain.SourceError, snap.DataSource)
	assert.Equal(t, domain.CountUnavailable, snap.SoldCount)
	assert.Equal(t, domain.CountUnavailable, snap.ActiveCount)
	assert.False(t, snap.HasPriceData())
}

func TestLiveProvider_NoResultsAnywhere(t *testing.T) {
	t.Parallel()

	p := NewLiveProvider(&fakeSearcher{}, testLimiter())
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceNoResults, snap.DataSource)
	assert.False(t, snap.HasPriceData())
}

func TestLiveProvider_BudgetExhaustedBeforeAnyData(t *testing.T) {
	t.Parallel()

	p := NewLiveProvider(&fakeSearcher{}, NewLimiter(1000, 100, 0))
	_, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	assert.ErrorIs(t, err, ErrDailyBudgetExhausted)
}

func TestLiveProvider_BudgetExhaustedKeepsPriorResult(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		results: map[string]*SearchResult{
			"Sony WH-1000XM5 good": {SoldCount: 2, ActiveCount: 2, AvgSoldPrice: 205},
		},
	}

	// One call of budget: level 1 runs, level 2 hits the budget wall.
	p := NewLiveProvider(searcher, NewLimiter(1000, 100, 1))
	snap, err := p.Snapshot(context.Background(), testItem(), domain.ConditionGood)
	require.NoError(t, err)

	assert.Len(t, searcher.queries, 1)
	assert.Equal(t, domain.SourceExactMatch, snap.DataSource)
	assert.Equal(t, 2, snap.SoldCount)
}

func TestLiveProvider_NoSearchableTerms(t *testing.T) {
	t.Parallel()

	p := NewLiveProvider(&fakeSearcher{}, testLimiter())
	snap, err := p.Snapshot(context.Background(), domain.ItemIdentification{}, domain.ConditionUnknown)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceNoResults, snap.DataSource)
	assert.Equal(t, domain.CountUnavailable, snap.SoldCount)
}

func TestLiveProvider_Available(t *testing.T) {
	t.Parallel()

	assert.True(t, NewLiveProvider(&fakeSearcher{}, testLimiter()).Available())
	assert.False(t, NewLiveProvider(nil, testLimiter()).Available())
}
