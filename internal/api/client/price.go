package client

import (
	"context"

	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/pricing"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// Price derives a recommendation from an already-gathered market snapshot.
func (c *Client) Price(ctx context.Context, snapshot domain.MarketSnapshot) (*domain.PriceRecommendation, error) {
	var rec domain.PriceRecommendation
	resp, err := c.rc.NewRequest().
		SetContext(ctx).
		SetBody(snapshot).
		SetResult(&rec).
		Post("/api/v1/price")
	if err := c.handleError(resp, err); err != nil {
		return nil, err
	}
	return &rec, nil
}

// StatisticsResult is the response of the price statistics endpoint.
type StatisticsResult struct {
	Distribution pricing.Distribution `json:"distribution"`
	Filtered     []float64            `json:"filtered"`
	OutlierCount int                  `json:"outlierCount"`
}

// Statistics computes distribution statistics for a set of prices,
// optionally filtering IQR outliers first.
func (c *Client) Statistics(ctx context.Context, prices []float64, filterOutliers bool) (*StatisticsResult, error) {
	body := map[string]any{
		"prices":         prices,
		"filterOutliers": filterOutliers,
	}

	var result StatisticsResult
	resp, err := c.rc.NewRequest().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/api/v1/price/statistics")
	if err := c.handleError(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}
