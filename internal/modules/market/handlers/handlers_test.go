package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aristath/folio/internal/clientdata"
	"github.com/aristath/folio/internal/domain"
	"github.com/aristath/folio/internal/modules/market"
	testingpkg "github.com/aristath/folio/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(provider domain.QuoteProvider) http.Handler {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	cache := clientdata.NewQuoteCache[[]domain.Quote](clientdata.TTLQuote, logger)
	service := market.NewService(provider, cache, time.Second, logger)

	router := chi.NewRouter()
	NewHandler(service, logger).RegisterRoutes(router)
	return router
}

func TestHandleAvailableAssets(t *testing.T) {
	provider := testingpkg.NewMockQuoteProvider()
	provider.SetQuotes(testingpkg.NewQuoteFixtures())
	router := setupRouter(provider)

	req := httptest.NewRequest("GET", "/available-assets/crypto", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var entries []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "BTC", entries[0]["symbol"])
	assert.Equal(t, "65000", entries[0]["current_price"])
}

func TestHandleAvailableAssets_UnknownType(t *testing.T) {
	router := setupRouter(testingpkg.NewMockQuoteProvider())

	req := httptest.NewRequest("GET", "/available-assets/bond", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMarketData(t *testing.T) {
	router := setupRouter(testingpkg.NewMockQuoteProvider())

	req := httptest.NewRequest("GET", "/market-data?type=BIST", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var tickers []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tickers))
	require.Len(t, tickers, 2)
	assert.Equal(t, "THYAO", tickers[0]["symbol"])
	assert.Equal(t, "285.5", tickers[0]["price"])
}

func TestHandleMarketData_MissingType(t *testing.T) {
	router := setupRouter(testingpkg.NewMockQuoteProvider())

	req := httptest.NewRequest("GET", "/market-data", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMarketData_ProviderDown(t *testing.T) {
	provider := testingpkg.NewMockQuoteProvider()
	provider.SetError(errors.New("down"))
	router := setupRouter(provider)

	req := httptest.NewRequest("GET", "/market-data?type=CRYPTO", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
