package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naganikhilbijjala/finpilot/internal/app"
	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/models"
	"github.com/naganikhilbijjala/finpilot/internal/services/portfolio"
	"github.com/naganikhilbijjala/finpilot/internal/storage"
)

// stubQuoteClient serves quotes from a map and fails for unknown tickers.
type stubQuoteClient struct {
	prices map[string]float64
}

func (c *stubQuoteClient) GetQuote(ctx context.Context, ticker string) (*models.StockPrice, error) {
	price, ok := c.prices[ticker]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", ticker)
	}
	return &models.StockPrice{
		Ticker:       ticker,
		CurrentPrice: price,
		Currency:     "USD",
		Timestamp:    time.Now().UTC(),
	}, nil
}

// newTestServer builds a server over temp-dir storage and a stub quote client.
func newTestServer(t *testing.T, prices map[string]float64) *Server {
	t.Helper()

	logger := common.NewSilentLogger()
	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret"
	config.Storage.Internal.Path = t.TempDir()
	config.Storage.User.Path = t.TempDir()

	manager, err := storage.NewStorageManager(logger, config)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	quotes := &stubQuoteClient{prices: prices}

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          manager,
		QuoteClient:      quotes,
		PortfolioService: portfolio.NewService(manager, quotes, logger),
		StartupTime:      time.Now(),
	}

	return NewServer(a)
}

// doJSON performs a request against the server's handler with an optional
// JSON body and bearer token, returning the recorder.
func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response body.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAndLogin creates a user and returns its id and a bearer token.
func registerAndLogin(t *testing.T, s *Server, email, password string) (string, string) {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/api/users", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	userID := created["data"].(map[string]interface{})["user_id"].(string)

	rec = doJSON(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decodeBody(t, rec)
	token := login["data"].(map[string]interface{})["token"].(string)

	return userID, token
}
