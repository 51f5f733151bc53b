package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/auth"
	investments "github.com/sebuszqo/BourseDashboard/internal/investment"
	"github.com/sebuszqo/BourseDashboard/internal/investment/catalog"
	"github.com/sebuszqo/BourseDashboard/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	resp := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		resp["errors"] = errors[0]
	}
	respondJSON(w, status, resp)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request completed")
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	userHandler        *user.Handler
	authService        auth.Service
	catalogHandler     catalog.Handler
	investmentsHandler *investments.InvestmentHandler
	health             func() map[string]string
}

func NewServer(
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	investmentHandler *investments.InvestmentHandler,
	catalogHandler catalog.Handler,
	health func() map[string]string,
) *Server {
	return &Server{
		authHandler:        authHandler,
		userHandler:        userHandler,
		investmentsHandler: investmentHandler,
		authService:        authService,
		catalogHandler:     catalogHandler,
		health:             health,
		router:             http.NewServeMux(),
	}
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	stats := s.health()
	if stats["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":   "unavailable",
			"database": stats,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"database": stats,
	})
}

// protected wraps h with JWT authentication and, when params are given, UUID path validation.
func (s *Server) protected(h http.HandlerFunc, params ...string) http.Handler {
	var next http.Handler = h
	if len(params) > 0 {
		next = s.investmentsHandler.ValidateInvestmentPathParamsMiddleware(next, params...)
	}
	return s.authService.JWTAccessTokenMiddleware()(next)
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("GET /api/protected/profile", s.protected(s.userHandler.HandleGetUserProfile))

	// PORTFOLIOS API
	protectedRoutes.Handle("POST /api/protected/portfolios", s.protected(s.investmentsHandler.CreatePortfolio))
	protectedRoutes.Handle("GET /api/protected/portfolios", s.protected(s.investmentsHandler.GetAllPortfolios))
	protectedRoutes.Handle("GET /api/protected/portfolios/{portfolioID}",
		s.protected(s.investmentsHandler.GetPortfolio, "portfolioID"))
	protectedRoutes.Handle("PUT /api/protected/portfolios/{portfolioID}",
		s.protected(s.investmentsHandler.UpdatePortfolio, "portfolioID"))
	protectedRoutes.Handle("DELETE /api/protected/portfolios/{portfolioID}",
		s.protected(s.investmentsHandler.DeletePortfolio, "portfolioID"))

	// TRANSACTION API
	protectedRoutes.Handle("GET /api/protected/transaction_types", s.protected(s.investmentsHandler.GetTransactionTypes))
	protectedRoutes.Handle("POST /api/protected/portfolios/{portfolioID}/transactions",
		s.protected(s.investmentsHandler.CreateTransaction, "portfolioID"))
	protectedRoutes.Handle("GET /api/protected/portfolios/{portfolioID}/transactions",
		s.protected(s.investmentsHandler.GetAllTransactions, "portfolioID"))
	protectedRoutes.Handle("DELETE /api/protected/portfolios/{portfolioID}/transactions/{transactionID}",
		s.protected(s.investmentsHandler.DeleteTransaction, "portfolioID", "transactionID"))

	// HOLDINGS API
	protectedRoutes.Handle("GET /api/protected/portfolios/{portfolioID}/holdings",
		s.protected(s.investmentsHandler.GetHoldings, "portfolioID"))
	protectedRoutes.Handle("GET /api/protected/portfolios/{portfolioID}/holdings/export",
		s.protected(s.investmentsHandler.ExportHoldings, "portfolioID"))

	// ASSET CATALOG
	protectedRoutes.Handle("GET /api/protected/asset_types", s.protected(s.investmentsHandler.GetAssetTypes))
	protectedRoutes.Handle("GET /api/protected/assets/search", s.protected(s.catalogHandler.SearchAssets))
	protectedRoutes.Handle("GET /api/protected/assets/{assetID}", s.protected(s.catalogHandler.GetAsset))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}
