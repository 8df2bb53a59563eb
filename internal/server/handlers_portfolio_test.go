package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := registerAndLogin(t, s, "alice@example.com", "pw")

	// Empty list to start
	rec := doJSON(t, s, http.MethodGet, "/api/portfolio/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["data"])

	// Create
	rec = doJSON(t, s, http.MethodPost, "/api/portfolio/transactions", token, map[string]interface{}{
		"ticker":      "aapl",
		"quantity":    10,
		"price":       150,
		"purchased_at": time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)["data"].(map[string]interface{})
	id := created["id"].(string)
	assert.Equal(t, "AAPL", created["ticker"])

	// Update
	rec = doJSON(t, s, http.MethodPut, "/api/portfolio/transactions/"+id, token, map[string]interface{}{
		"ticker":      "AAPL",
		"quantity":    12,
		"price":       155,
		"purchased_at": time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 12.0, updated["quantity"])

	// Unknown id
	rec = doJSON(t, s, http.MethodPut, "/api/portfolio/transactions/nope", token, map[string]interface{}{
		"ticker":      "AAPL",
		"quantity":    1,
		"price":       1,
		"purchased_at": time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Delete
	rec = doJSON(t, s, http.MethodDelete, "/api/portfolio/transactions/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/portfolio/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["data"])
}

func TestTransactionValidationErrors(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := registerAndLogin(t, s, "alice@example.com", "pw")

	cases := []map[string]interface{}{
		{"ticker": "", "quantity": 1, "price": 1, "purchased_at": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"ticker": "AAPL", "quantity": -1, "price": 1, "purchased_at": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"ticker": "AAPL", "quantity": 1, "price": 0, "purchased_at": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"ticker": "AAPL", "quantity": 1, "price": 1, "purchased_at": time.Now().Add(48 * time.Hour)},
	}
	for _, body := range cases {
		rec := doJSON(t, s, http.MethodPost, "/api/portfolio/transactions", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %v", body)
	}
}

func TestTransactionsAreUserScoped(t *testing.T) {
	s := newTestServer(t, nil)
	_, aliceToken := registerAndLogin(t, s, "alice@example.com", "pw-a")
	_, bobToken := registerAndLogin(t, s, "bob@example.com", "pw-b")

	rec := doJSON(t, s, http.MethodPost, "/api/portfolio/transactions", aliceToken, map[string]interface{}{
		"ticker":      "AAPL",
		"quantity":    10,
		"price":       150,
		"purchased_at": time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeBody(t, rec)["data"].(map[string]interface{})["id"].(string)

	// Bob sees nothing and cannot touch Alice's transaction
	rec = doJSON(t, s, http.MethodGet, "/api/portfolio/transactions", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["data"])

	rec = doJSON(t, s, http.MethodDelete, "/api/portfolio/transactions/"+id, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Alice's record is untouched
	rec = doJSON(t, s, http.MethodGet, "/api/portfolio/transactions", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)
}

func TestAnalyticsEndpoint(t *testing.T) {
	s := newTestServer(t, map[string]float64{"AAPL": 200, "MSFT": 400})
	_, token := registerAndLogin(t, s, "alice@example.com", "pw")

	seed := []map[string]interface{}{
		{"ticker": "AAPL", "quantity": 10, "price": 150, "purchased_at": time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"ticker": "MSFT", "quantity": 5, "price": 300, "purchased_at": time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"ticker": "AAPL", "quantity": 2, "price": 180, "purchased_at": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, body := range seed {
		rec := doJSON(t, s, http.MethodPost, "/api/portfolio/transactions", token, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, s, http.MethodGet, "/api/portfolio/analytics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]interface{})

	holdings := data["holdings"].([]interface{})
	require.Len(t, holdings, 2)

	aapl := holdings[0].(map[string]interface{})
	assert.Equal(t, "AAPL", aapl["ticker"])
	assert.Equal(t, 12.0, aapl["totalQuantity"])
	assert.NotNil(t, aapl["xirr"], "multi-lot holding should carry an XIRR")

	msft := holdings[1].(map[string]interface{})
	assert.Equal(t, "MSFT", msft["ticker"])
	assert.NotNil(t, msft["cagr"], "single-lot holding should carry a CAGR")

	assert.InDelta(t, 10*150.0+5*300.0+2*180.0, data["totalInvested"].(float64), 1e-9)
	assert.NotNil(t, data["overallXIRR"])
}

func TestAnalyticsRequiresAuth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, http.MethodGet, "/api/portfolio/analytics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStockQuote(t *testing.T) {
	s := newTestServer(t, map[string]float64{"AAPL": 200})
	_, token := registerAndLogin(t, s, "alice@example.com", "pw")

	rec := doJSON(t, s, http.MethodGet, "/api/stocks/AAPL", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 200.0, data["currentPrice"])

	// Upstream failure surfaces as 502
	rec = doJSON(t, s, http.MethodGet, "/api/stocks/NOPE", token, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// Anonymous is rejected
	rec = doJSON(t, s, http.MethodGet, "/api/stocks/AAPL", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
