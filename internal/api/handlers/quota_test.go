package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/api/handlers"
	"github.com/Joshspeakman/ebay-resale-analyzer/internal/market"
)

func TestQuotaHandler_LiveProvider(t *testing.T) {
	t.Parallel()

	limiter := market.NewLimiter(10, 5, 100)
	require.NoError(t, limiter.Wait(context.Background()))

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler("live", limiter))

	resp := api.Get("/api/v1/quota")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"provider":"live"`)
	assert.Contains(t, body, `"rateLimited":true`)
	assert.Contains(t, body, `"dailyBudget":100`)
	assert.Contains(t, body, `"used":1`)
	assert.Contains(t, body, `"remaining":99`)
	assert.Contains(t, body, `"resetAt"`)
}

func TestQuotaHandler_StaticProvider(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler("static", nil))

	resp := api.Get("/api/v1/quota")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"provider":"static"`)
	assert.Contains(t, body, `"rateLimited":false`)
	assert.NotContains(t, body, `"dailyBudget"`)
}
