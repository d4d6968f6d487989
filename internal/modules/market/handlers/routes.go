package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/available-assets/{type}", h.HandleAvailableAssets) // stock, fund, commodity, crypto
	r.Get("/market-data", h.HandleMarketData)                  // ?type=CRYPTO|BIST|ABD|FOREX|COMMODITY
}
