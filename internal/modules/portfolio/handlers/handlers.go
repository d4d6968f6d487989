// Package handlers provides HTTP handlers for portfolio management.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/modules/portfolio"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.PortfolioService
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.PortfolioService, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// HandleListCategories returns all categories
func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, categories)
}

// HandleCreateCategory creates a category
func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in portfolio.CategoryInput
	if !h.decode(w, r, &in) {
		return
	}

	category, err := h.service.CreateCategory(in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, category)
}

// HandleListAssets returns the holdings of ?userId= (default owner when absent),
// optionally narrowed to one asset ?type=
func (h *Handler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var holdings []domain.Holding
	var err error
	if assetType := query.Get("type"); assetType != "" {
		holdings, err = h.service.ListHoldingsByType(query.Get("userId"), assetType)
	} else {
		holdings, err = h.service.ListHoldings(query.Get("userId"))
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, holdings)
}

// HandleGetAsset returns one holding
func (h *Handler) HandleGetAsset(w http.ResponseWriter, r *http.Request) {
	holding, err := h.service.GetHolding(chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, holding)
}

// HandleCreateAsset creates a holding
func (h *Handler) HandleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var in portfolio.HoldingInput
	if !h.decode(w, r, &in) {
		return
	}

	holding, err := h.service.CreateHolding(in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, holding)
}

// HandleUpdateAsset applies a partial update to a holding
func (h *Handler) HandleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var patch portfolio.HoldingPatch
	if !h.decode(w, r, &patch) {
		return
	}

	holding, err := h.service.UpdateHolding(chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, holding)
}

// HandleDeleteAsset deletes a holding and its transactions. Always 204 unless storage fails.
func (h *Handler) HandleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHolding(chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListTransactions returns the transactions of ?userId=, newest first
func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions(r.URL.Query().Get("userId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

// HandleListAssetTransactions returns the transactions of one holding
func (h *Handler) HandleListAssetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactionsByAsset(chi.URLParam(r, "assetId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

// HandleCreateTransaction records a transaction
func (h *Handler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in portfolio.TransactionInput
	if !h.decode(w, r, &in) {
		return
	}

	transaction, err := h.service.CreateTransaction(in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, transaction)
}

// HandleGetValuation returns the valuation of ?userId=
func (h *Handler) HandleGetValuation(w http.ResponseWriter, r *http.Request) {
	valuation, err := h.service.Valuation(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, valuation)
}

// HandleGetDistribution returns the category distribution of ?userId=
func (h *Handler) HandleGetDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.service.Distribution(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dist)
}

// HandleGetSummary returns valuation and distribution together
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// Helper methods

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeValidation(w, []*domain.ValidationError{{Field: "body", Message: "malformed JSON: " + err.Error()}})
		return false
	}
	return true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if details, ok := domain.ValidationDetails(err); ok {
		h.writeValidation(w, details)
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.log.Error().Err(err).Msg("Request failed")
	h.writeError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) writeValidation(w http.ResponseWriter, details []*domain.ValidationError) {
	h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Invalid input",
		"errors": details,
	})
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
