package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"profitum/internal/catalog"
	"profitum/internal/service"
	"profitum/internal/transport/rest/handler"
	"profitum/internal/transport/rest/middleware"
	"profitum/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	SessionService   *service.SessionService
	MigrationService *service.MigrationService
	CatalogService   *catalog.Service
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	simulatorHandler := handler.NewSimulatorHandler(c.SessionService, c.MigrationService, c.AuthService)
	adminHandler := handler.NewAdminHandler(c.CatalogService, c.SessionService)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/admin/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/simulator/session", simulatorHandler.CreateSession).Methods("POST", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/questions", simulatorHandler.GetQuestions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/responses", simulatorHandler.GetResponses).Methods("GET", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/response", simulatorHandler.SubmitResponse).Methods("POST", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/eligibility", simulatorHandler.ComputeEligibility).Methods("POST", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/results", simulatorHandler.GetResults).Methods("GET", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/abandon", simulatorHandler.Abandon).Methods("POST", "OPTIONS")
	v1.HandleFunc("/simulator/session/{token}/migrate", simulatorHandler.Migrate).Methods("POST", "OPTIONS")

	// WebSocket route (session token is the credential)
	v1.HandleFunc("/ws/session/{token}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/admin/catalog/reload", adminHandler.ReloadCatalog).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/sessions", adminHandler.ListSessions).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
