package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/api/handlers"
)

func TestPriceHandler_Price(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     map[string]any
		wantBody []string
	}{
		{
			name: "exact match snapshot",
			body: map[string]any{
				"soldCount":      10,
				"activeCount":    40,
				"avgSoldPrice":   100,
				"avgActivePrice": 80,
				"dataSource":     "exact-match",
			},
			wantBody: []string{
				`"suggestedPrice":85`,
				`"quickSalePrice":75`,
				`"premiumPrice":100`,
				`"confidence":"medium"`,
				`"outlierCount":0`,
			},
		},
		{
			name: "no price data",
			body: map[string]any{
				"soldCount":   0,
				"activeCount": 0,
				"dataSource":  "no-results",
			},
			wantBody: []string{
				`"suggestedPrice":null`,
				`"quickSalePrice":null`,
				`"premiumPrice":null`,
				`"confidence":"low"`,
				`"insufficient data for price calculation"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterPriceRoutes(api, handlers.NewPriceHandler())

			resp := api.Post("/api/v1/price", tt.body)
			require.Equal(t, http.StatusOK, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
