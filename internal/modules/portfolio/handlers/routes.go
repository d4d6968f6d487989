package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.HandleListCategories)
		r.Post("/", h.HandleCreateCategory)
	})

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", h.HandleListAssets) // ?userId=
		r.Post("/", h.HandleCreateAsset)
		r.Get("/{id}", h.HandleGetAsset)
		r.Patch("/{id}", h.HandleUpdateAsset)
		r.Delete("/{id}", h.HandleDeleteAsset) // Idempotent, cascades to transactions
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.HandleListTransactions) // ?userId=, newest first
		r.Post("/", h.HandleCreateTransaction)
		r.Get("/asset/{assetId}", h.HandleListAssetTransactions)
	})

	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/valuation", h.HandleGetValuation)       // Totals and per-holding gain/loss
		r.Get("/distribution", h.HandleGetDistribution) // Category buckets and weights
		r.Get("/summary", h.HandleGetSummary)           // Both, from one read
	})
}
