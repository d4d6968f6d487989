package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Markets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "market_cap_desc", r.URL.Query().Get("order"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png","current_price":87267.53,"price_change_percentage_24h":-1.25},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","image":"https://img/eth.png","current_price":2933.91,"price_change_percentage_24h":null}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	quotes, err := client.Markets(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "BTC", quotes[0].Symbol)
	assert.Equal(t, "Bitcoin", quotes[0].Name)
	assert.Equal(t, "https://img/btc.png", quotes[0].Image)
	assert.Equal(t, "87267.53", quotes[0].Price.String())
	assert.Equal(t, "-1.25", quotes[0].PercentChange24h.String())

	assert.Equal(t, "ETH", quotes[1].Symbol)
	assert.True(t, quotes[1].PercentChange24h.IsZero())
}

func TestClient_Markets_SkipsCoinsWithoutPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"xyz","symbol":"xyz","name":"Xyz","image":"","current_price":null,"price_change_percentage_24h":null},
			{"id":"dead","symbol":"dead","name":"Dead","image":"","current_price":0,"price_change_percentage_24h":-100}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	quotes, err := client.Markets(context.Background(), 10)
	require.NoError(t, err)

	// A real zero price is kept; a missing one is dropped
	require.Len(t, quotes, 1)
	assert.Equal(t, "DEAD", quotes[0].Symbol)
	assert.True(t, quotes[0].Price.IsZero())
}

func TestClient_Markets_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.Markets(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Markets_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop())
	_, err := client.Markets(context.Background(), 10)
	assert.Error(t, err)
}

func TestClient_Markets_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Markets(ctx, 10)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_Markets_InvalidPerPage(t *testing.T) {
	client := NewClient("", zerolog.Nop())
	_, err := client.Markets(context.Background(), 0)
	assert.Error(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestClient_Markets_QuoteCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "try", r.URL.Query().Get("vs_currency"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, zerolog.Nop()).WithQuoteCurrency("TRY")
	quotes, err := client.Markets(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, quotes)

	client.WithQuoteCurrency("")
	assert.Equal(t, "try", client.quoteCurrency)
}
