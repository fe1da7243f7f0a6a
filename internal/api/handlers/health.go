package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Joshspeakman/ebay-resale-analyzer/internal/market"
	"github.com/Joshspeakman/ebay-resale-analyzer/pkg/vision"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	identifier vision.Identifier
	provider   market.Provider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(identifier vision.Identifier, provider market.Provider) *HealthHandler {
	return &HealthHandler{identifier: identifier, provider: provider}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 when both collaborators are wired and available,
// 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.identifier == nil || h.provider == nil || !h.provider.Available() {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
