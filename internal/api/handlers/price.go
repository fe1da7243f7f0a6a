package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/metrics"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/pricing"
	domain "github.com/Joshspeakman/ebay-resale-analyzer/pkg/types"
)

// PriceHandler exposes the pricing engine over HTTP for callers that already
// hold a market snapshot.
type PriceHandler struct{}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler() *PriceHandler {
	return &PriceHandler{}
}

// PriceInput is the request body for the price endpoint.
type PriceInput struct {
	Body domain.MarketSnapshot
}

// PriceOutput is the response body for the price endpoint.
type PriceOutput struct {
	Body domain.PriceRecommendation
}

// Price derives a recommendation from the submitted snapshot. The engine is
// total: malformed-but-parseable snapshots yield the insufficient-data
// result rather than an error.
func (*PriceHandler) Price(_ context.Context, input *PriceInput) (*PriceOutput, error) {
	rec := pricing.CalculateSuggestedPrice(input.Body)

	metrics.RecommendationsTotal.WithLabelValues(string(rec.Confidence)).Inc()
	if rec.SuggestedPrice != nil {
		metrics.SuggestedPrice.Observe(*rec.SuggestedPrice)
	}

	return &PriceOutput{Body: rec}, nil
}

// RegisterPriceRoutes registers the price endpoint with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PriceHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "price-snapshot",
		Method:      http.MethodPost,
		Path:        "/api/v1/price",
		Summary:     "Derive a price recommendation",
		Description: "Runs the pricing engine on a market snapshot supplied by the caller.",
		Tags:        []string{"pricing"},
	}, h.Price)
}
