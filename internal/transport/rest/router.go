package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/scot00671234/wishwello/internal/service"
	"github.com/scot00671234/wishwello/internal/transport/rest/handler"
	"github.com/scot00671234/wishwello/internal/transport/rest/middleware"
	"github.com/scot00671234/wishwello/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	TeamService      *service.TeamService
	FeedbackService  *service.FeedbackService
	AnalyticsService *service.AnalyticsService
	DashboardService *service.DashboardService
	WSHandler        *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	teamHandler := handler.NewTeamHandler(c.TeamService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService)
	dashboardHandler := handler.NewDashboardHandler(c.DashboardService, c.AnalyticsService, c.TeamService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/feedback/{teamId}", feedbackHandler.GetForm).Methods("GET", "OPTIONS")
	v1.HandleFunc("/feedback/{teamId}", feedbackHandler.Submit).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/teams/{teamId}/dashboard", c.WSHandler.DashboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Manager routes (require manager auth)
	managerRoutes := v1.NewRoute().Subrouter()
	managerRoutes.Use(authMW.RequireManager)

	managerRoutes.HandleFunc("/teams", teamHandler.Create).Methods("POST", "OPTIONS")
	managerRoutes.HandleFunc("/teams", teamHandler.List).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}", teamHandler.Get).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}", teamHandler.Update).Methods("PUT", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}", teamHandler.Delete).Methods("DELETE", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/employees", teamHandler.PutEmployees).Methods("PUT", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/employees", teamHandler.GetEmployees).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/questions", teamHandler.PutQuestions).Methods("PUT", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/questions", teamHandler.GetQuestions).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/schedule", teamHandler.PutSchedule).Methods("PUT", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/schedule", teamHandler.GetSchedule).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/dashboard", dashboardHandler.Get).Methods("GET", "OPTIONS")
	managerRoutes.HandleFunc("/teams/{teamId}/analytics", dashboardHandler.Analytics).Methods("GET", "OPTIONS")

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
