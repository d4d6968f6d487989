// Package handlers provides HTTP handlers for asset catalogs and market data.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/modules/market"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles market HTTP requests
type Handler struct {
	service *market.Service
	log     zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(service *market.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "market").Logger(),
	}
}

// HandleAvailableAssets handles GET /api/available-assets/{type}
func (h *Handler) HandleAvailableAssets(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.AvailableAssets(r.Context(), chi.URLParam(r, "type"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

// HandleMarketData handles GET /api/market-data?type=
func (h *Handler) HandleMarketData(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.service.MarketData(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tickers)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if details, ok := domain.ValidationDetails(err); ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "Invalid input",
			"errors": details,
		})
		return
	}
	if errors.Is(err, domain.ErrQuoteUnavailable) {
		h.log.Warn().Err(err).Msg("Market data unavailable")
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Request failed")
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
