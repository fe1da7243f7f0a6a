package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/pricing"
)

// StatsHandler exposes price distribution statistics and outlier filtering.
type StatsHandler struct{}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// StatsInput is the request body for the statistics endpoint.
type StatsInput struct {
	Body struct {
		Prices         []float64 `json:"prices" minItems:"1" doc:"Comparable prices to analyze" example:"[10, 20, 20, 30]"`
		FilterOutliers bool      `json:"filterOutliers,omitempty" doc:"Apply IQR outlier filtering before analysis"`
	}
}

// StatsOutput is the response body for the statistics endpoint.
type StatsOutput struct {
	Body struct {
		Distribution pricing.Distribution `json:"distribution" doc:"Median, mode, standard deviation, and mean"`
		Filtered     []float64            `json:"filtered" doc:"Prices the distribution was computed over"`
		OutlierCount int                  `json:"outlierCount" doc:"Values removed by outlier filtering"`
	}
}

// Statistics analyzes the submitted prices, optionally filtering outliers
// first.
func (*StatsHandler) Statistics(_ context.Context, input *StatsInput) (*StatsOutput, error) {
	prices := input.Body.Prices
	outliers := 0
	if input.Body.FilterOutliers {
		prices, outliers = pricing.RemoveOutliers(prices)
	}

	out := &StatsOutput{}
	out.Body.Distribution = pricing.AnalyzePriceDistribution(prices)
	out.Body.Filtered = prices
	out.Body.OutlierCount = outliers
	return out, nil
}

// RegisterStatsRoutes registers the statistics endpoint with the Huma API.
func RegisterStatsRoutes(api huma.API, h *StatsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "price-statistics",
		Method:      http.MethodPost,
		Path:        "/api/v1/price/statistics",
		Summary:     "Analyze a price distribution",
		Description: "Computes median, mode, standard deviation, and mean over comparable prices, with optional IQR outlier filtering.",
		Tags:        []string{"pricing"},
	}, h.Statistics)
}
