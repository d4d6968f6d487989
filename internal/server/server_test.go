package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aristath/folio/internal/config"
	"github.com/aristath/folio/internal/di"
	"github.com/aristath/folio/internal/scheduler"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"symbol":"btc","name":"Bitcoin","current_price":1500,"price_change_percentage_24h":2.1},
			{"symbol":"eth","name":"Ethereum","current_price":100,"price_change_percentage_24h":-0.3}
		]`))
	}))
	t.Cleanup(provider.Close)

	cfg := &config.Config{
		DataDir:              t.TempDir(),
		Port:                 8080,
		DemoUserID:           "demo-user",
		ReportingCurrency:    "TRY",
		CoinGeckoBaseURL:     provider.URL,
		QuoteFreshness:       5 * time.Minute,
		QuoteTimeout:         2 * time.Second,
		LivePricing:          true,
		QuoteRefreshSchedule: "@every 5m",
		CacheCleanupSchedule: "@every 30m",
	}

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	container, jobs, err := di.Wire(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	sched := scheduler.New(logger)
	require.NoError(t, di.ScheduleJobs(sched, jobs, cfg))

	return New(Config{
		Log:       logger,
		Container: container,
		Jobs:      jobs,
		Scheduler: sched,
		Port:      cfg.Port,
		DevMode:   true,
	})
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestSystemStatus(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, "GET", "/api/system/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response SystemStatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
	require.NotNil(t, response.Database)
	assert.Greater(t, response.Database.PageCount, int64(0))
	assert.Equal(t, 0, response.QuoteCacheEntries)
}

func TestTriggerJob(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, "POST", "/api/system/jobs/market_quote_warmup", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, "GET", "/api/system/status", nil)
	var response SystemStatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.QuoteCacheEntries)

	jobRuns := map[string]int{}
	for _, st := range response.Jobs {
		jobRuns[st.Name] = st.Runs
	}
	assert.Equal(t, 1, jobRuns["market_quote_warmup"])
	assert.Equal(t, 0, jobRuns["quote_cache_cleanup"])
	assert.Contains(t, jobRuns, "database_maintenance")

	w = do(t, s, "POST", "/api/system/jobs/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIRoutesAreMounted(t *testing.T) {
	s := setupTestServer(t)

	paths := []string{
		"/api/categories",
		"/api/assets",
		"/api/transactions",
		"/api/portfolio/valuation",
		"/api/portfolio/distribution",
		"/api/portfolio/summary",
		"/api/available-assets/stock",
		"/api/market-data?type=BIST",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := do(t, s, "GET", path, nil)
			assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		})
	}
}

func TestValuationUsesLiveQuotes(t *testing.T) {
	s := setupTestServer(t)

	w := do(t, s, "POST", "/api/assets", map[string]interface{}{
		"name": "Bitcoin", "symbol": "BTC", "type": "crypto",
		"quantity": "2", "purchase_price": "1000", "current_price": "1200",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, s, "POST", "/api/assets", map[string]interface{}{
		"name": "Gram Altın", "symbol": "GAU", "type": "commodity",
		"quantity": "1", "purchase_price": "2000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, s, "GET", "/api/portfolio/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		Valuation struct {
			TotalValue string   `json:"total_value"`
			Unpriced   []string `json:"unpriced"`
			Degraded   bool     `json:"degraded"`
		} `json:"valuation"`
		Distribution struct {
			Buckets []struct {
				Type          string `json:"type"`
				WeightPercent string `json:"weight_percent"`
			} `json:"buckets"`
		} `json:"distribution"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))

	// 2 x 1500 live + 2000 purchase fallback
	assert.Equal(t, "5000", summary.Valuation.TotalValue)
	assert.Len(t, summary.Valuation.Unpriced, 1)
	assert.False(t, summary.Valuation.Degraded)
	require.Len(t, summary.Distribution.Buckets, 2)
	assert.Equal(t, "crypto", summary.Distribution.Buckets[0].Type)
	assert.Equal(t, "60", summary.Distribution.Buckets[0].WeightPercent)
}

func TestCORSPreflight(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest("OPTIONS", "/api/assets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
