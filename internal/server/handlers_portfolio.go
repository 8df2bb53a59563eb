package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/clients/yahoo"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// --- Portfolio handlers ---

// transactionRequest is the body for create and update.
type transactionRequest struct {
	Ticker      string    `json:"ticker"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	PurchasedAt time.Time `json:"purchased_at"`
}

func (req *transactionRequest) toModel() *models.Transaction {
	return &models.Transaction{
		Ticker:      req.Ticker,
		Quantity:    req.Quantity,
		Price:       req.Price,
		PurchasedAt: req.PurchasedAt,
	}
}

// handleTransactions dispatches GET/POST for /api/portfolio/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r, userID)
	case http.MethodPost:
		s.handleTransactionCreate(w, r, userID)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// routeTransaction dispatches PUT/DELETE for /api/portfolio/transactions/{id}.
func (s *Server) routeTransaction(w http.ResponseWriter, r *http.Request) {
	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	id := PathParam(r, "/api/portfolio/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "transaction id is required in path")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleTransactionUpdate(w, r, userID, id)
	case http.MethodDelete:
		s.handleTransactionDelete(w, r, userID, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request, userID string) {
	txns, err := s.app.PortfolioService.ListTransactions(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list transactions: %v", err))
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   txns,
	})
}

func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request, userID string) {
	var req transactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	created, err := s.app.PortfolioService.CreateTransaction(r.Context(), userID, req.toModel())
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ok",
		"data":   created,
	})
}

func (s *Server) handleTransactionUpdate(w http.ResponseWriter, r *http.Request, userID, id string) {
	var req transactionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	updated, err := s.app.PortfolioService.UpdateTransaction(r.Context(), userID, id, req.toModel())
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   updated,
	})
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request, userID, id string) {
	if err := s.app.PortfolioService.DeleteTransaction(r.Context(), userID, id); err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, "transaction not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete transaction: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

// handleAnalytics handles GET /api/portfolio/analytics — the computed
// holdings view with CAGR/XIRR per holding and overall.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	analytics, err := s.app.PortfolioService.GetAnalytics(r.Context(), userID, time.Now().UTC())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to compute analytics: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   analytics,
	})
}

// handleStockQuote handles GET /api/stocks/{ticker} — current quote lookup.
func (s *Server) handleStockQuote(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := requireUser(w, r)
	if userID == "" {
		return
	}

	ticker := PathParam(r, "/api/stocks/", "")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	quote, err := s.app.PortfolioService.GetQuote(r.Context(), ticker)
	if err != nil {
		var apiErr *yahoo.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			WriteError(w, http.StatusNotFound, fmt.Sprintf("ticker '%s' not found", ticker))
			return
		}
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Failed to fetch quote: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   quote,
	})
}

// isNotFound reports whether the error indicates a missing record.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
