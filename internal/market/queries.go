package market

import (
	"strings"

	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// queryLevel is one step of the broadening ladder: the query to run and the
// dataSource tag its results carry.
type queryLevel struct {
	query  string
	source domain.DataSource
	note   string
}

// buildQueryLevels produces the broadening ladder for an item: most specific
// first (brand+model+condition), then brand+model, then brand+category.
// Levels that would be empty or duplicate the previous level are dropped, so
// an item without a model skips straight to the category query.
func buildQueryLevels(item domain.ItemIdentification, cond domain.Condition) []queryLevel {
	name := item.ItemName
	if item.Brand != "" && item.Model != "" {
		name = joinTerms(item.Brand, item.Model)
	}

	// An unknown condition adds no signal to the query.
	condTerm := string(cond)
	if cond == domain.ConditionUnknown {
		condTerm = ""
	}

	// A category query without a brand is too generic to price from.
	categoryQuery := ""
	if item.Brand != "" {
		categoryQuery = joinTerms(item.Brand, item.Category)
	}

	candidates := []queryLevel{
		{
			query:  joinTerms(name, condTerm),
			source: domain.SourceExactMatch,
			note:   "exact query: item, model, and condition",
		},
		{
			query:  name,
			source: domain.SourceSimilarItems,
			note:   "broadened query: item and model, any condition",
		},
		{
			query:  categoryQuery,
			source: domain.SourceCategoryEstimate,
			note:   "broadest query: brand and category",
		},
	}

	levels := make([]queryLevel, 0, len(candidates))
	var prev string
	for _, c := range candidates {
		if c.query == "" || c.query == prev {
			continue
		}
		levels = append(levels, c)
		prev = c.query
	}
	return levels
}

// joinTerms joins non-empty terms with single spaces.
func joinTerms(terms ...string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
