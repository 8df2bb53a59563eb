package server

import (
	"net/http"
	"time"

	"github.com/naganikhilbijjala/finpilot/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Users
	mux.HandleFunc("/api/users/", s.routeUsers)
	mux.HandleFunc("/api/users", s.handleUserCreate)

	// Auth
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Portfolio
	mux.HandleFunc("/api/portfolio/transactions/", s.routeTransaction)
	mux.HandleFunc("/api/portfolio/transactions", s.handleTransactions)
	mux.HandleFunc("/api/portfolio/analytics", s.handleAnalytics)

	// Market data
	mux.HandleFunc("/api/stocks/", s.handleStockQuote)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":           s.app.Config.Environment,
		"storage_internal_path": s.app.Config.Storage.Internal.Path,
		"storage_user_path":     s.app.Config.Storage.User.Path,
		"logging_level":         s.app.Config.Logging.Level,
		"uptime":                uptime.String(),
		"started_at":            s.app.StartupTime,
	})
}
