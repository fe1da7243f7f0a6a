package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/market"
)

// QuotaHandler reports live search budget state.
type QuotaHandler struct {
	provider string
	limiter  *market.Limiter
}

// NewQuotaHandler creates a new QuotaHandler. The limiter is nil for
// providers that do not consume a search budget.
func NewQuotaHandler(provider string, limiter *market.Limiter) *QuotaHandler {
	return &QuotaHandler{provider: provider, limiter: limiter}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Provider    string     `json:"provider" doc:"Active market provider" example:"live"`
		RateLimited bool       `json:"rateLimited" doc:"Whether the provider consumes a search budget"`
		DailyBudget int64      `json:"dailyBudget,omitempty" doc:"Search calls allowed per rolling 24h window"`
		Used        int64      `json:"used,omitempty" doc:"Calls consumed in the current window"`
		Remaining   int64      `json:"remaining,omitempty" doc:"Calls left in the current window"`
		ResetAt     *time.Time `json:"resetAt,omitempty" doc:"When the current window expires"`
	}
}

// Quota returns the current search budget state.
func (h *QuotaHandler) Quota(context.Context, *struct{}) (*QuotaOutput, error) {
	out := &QuotaOutput{}
	out.Body.Provider = h.provider

	if h.limiter != nil {
		resetAt := h.limiter.ResetAt()
		out.Body.RateLimited = true
		out.Body.DailyBudget = h.limiter.Budget()
		out.Body.Used = h.limiter.Used()
		out.Body.Remaining = h.limiter.Remaining()
		out.Body.ResetAt = &resetAt
	}

	return out, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Inspect the search budget",
		Description: "Reports the live provider's remaining search budget and window reset time.",
		Tags:        []string{"market"},
	}, h.Quota)
}
