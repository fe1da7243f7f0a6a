package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/api/handlers"
)

type statsBody struct {
	Distribution struct {
		Median float64 `json:"median"`
		Mode   float64 `json:"mode"`
		StdDev float64 `json:"stdDev"`
		Mean   float64 `json:"mean"`
	} `json:"distribution"`
	Filtered     []float64 `json:"filtered"`
	OutlierCount int       `json:"outlierCount"`
}

func TestStatsHandler_Statistics(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler())

	resp := api.Post("/api/v1/price/statistics", map[string]any{
		"prices": []float64{10, 20, 20, 30},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body statsBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.InDelta(t, 20, body.Distribution.Median, 0.001)
	assert.InDelta(t, 20, body.Distribution.Mode, 0.001)
	assert.InDelta(t, 7.07, body.Distribution.StdDev, 0.001)
	assert.InDelta(t, 20, body.Distribution.Mean, 0.001)
	assert.Equal(t, []float64{10, 20, 20, 30}, body.Filtered)
	assert.Zero(t, body.OutlierCount)
}

func TestStatsHandler_FilterOutliers(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler())

	resp := api.Post("/api/v1/price/statistics", map[string]any{
		"prices":         []float64{1, 2, 3, 4, 100},
		"filterOutliers": true,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body statsBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, []float64{1, 2, 3, 4}, body.Filtered)
	assert.Equal(t, 1, body.OutlierCount)
	assert.InDelta(t, 2.5, body.Distribution.Median, 0.001)
}

func TestStatsHandler_EmptyPricesRejected(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler())

	resp := api.Post("/api/v1/price/statistics", map[string]any{
		"prices": []float64{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
