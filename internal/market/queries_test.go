package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

func TestBuildQueryLevels_FullIdentification(t *testing.T) {
	t.Parallel()

	item := domain.ItemIdentification{
		ItemName: "Sony WH-1000XM5 Wireless Headphones",
		Brand:    "Sony",
		Model:    "WH-1000XM5",
		Category: "electronics",
	}

	levels := buildQueryLevels(item, domain.ConditionGood)
	require.Len(t, levels, 3)

	assert.Equal(t, "Sony WH-1000XM5 good", levels[0].query)
	assert.Equal(t, domain.SourceExactMatch, levels[0].source)

	assert.Equal(t, "Sony WH-1000XM5", levels[1].query)
	assert.Equal(t, domain.SourceSimilarItems, levels[1].source)

	assert.Equal(t, "Sony electronics", levels[2].query)
	assert.Equal(t, domain.SourceCategoryEstimate, levels[2].source)
}

func TestBuildQueryLevels_UnknownConditionCollapsesExactLevel(t *testing.T) {
	t.Parallel()

	item := domain.ItemIdentification{
		ItemName: "DeWalt DCD791 Drill",
		Brand:    "DeWalt",
		Model:    "DCD791",
		Category: "tools",
	}

	levels := buildQueryLevels(item, domain.ConditionUnknown)
	require.Len(t, levels, 2, "exact and similar levels share a query when condition adds nothing")

	assert.Equal(t, "DeWalt DCD791", levels[0].query)
	assert.Equal(t, domain.SourceExactMatch, levels[0].source)
	assert.Equal(t, "DeWalt tools", levels[1].query)
}

func TestBuildQueryLevels_NoModelFallsBackToItemName(t *testing.T) {
	t.Parallel()

	item := domain.ItemIdentification{
		ItemName: "vintage leather jacket",
		Category: "clothing",
	}

	levels := buildQueryLevels(item, domain.ConditionFair)
	require.Len(t, levels, 2, "no brand means no category-level query")

	assert.Equal(t, "vintage leather jacket fair", levels[0].query)
	assert.Equal(t, "vintage leather jacket", levels[1].query)
}

func TestBuildQueryLevels_EmptyIdentification(t *testing.T) {
	t.Parallel()

	levels := buildQueryLevels(domain.ItemIdentification{}, domain.ConditionUnknown)
	assert.Empty(t, levels)
}

func TestSufficient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		sold, active int
		want         bool
	}{
		{"enough sold", 3, 0, true},
		{"more than enough sold", 10, 0, true},
		{"one sale with active support", 1, 5, true},
		{"one sale without active support", 1, 4, false},
		{"active only", 0, 50, false},
		{"nothing", 0, 0, false},
		{"two sold under both thresholds", 2, 4, false},
		{"two sold with active support", 2, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Sufficient(tt.sold, tt.active, DefaultMinSoldListings, DefaultMinActiveListings)
			assert.Equal(t, tt.want, got)
		})
	}
}
