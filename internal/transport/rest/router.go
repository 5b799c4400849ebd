package rest

import (
	"net/http"
	"os"

	"voicedeck/internal/service"
	"voicedeck/internal/transport/rest/handler"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	MetricsService    *service.MetricsService
	TrendService      *service.TrendService
	EngagementService *service.EngagementService
	AnomalyService    *service.AnomalyService
	RealtimeService   *service.RealtimeService
	Logger            *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	analyticsHandler := handler.NewAnalyticsHandler(
		c.MetricsService,
		c.TrendService,
		c.EngagementService,
		c.AnomalyService,
		c.RealtimeService,
		c.Logger,
	)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	org := v1.PathPrefix("/orgs/{orgId}/analytics").Subrouter()
	org.HandleFunc("/metrics", analyticsHandler.GetMetrics).Methods("GET", "OPTIONS")
	org.HandleFunc("/trends/forces", analyticsHandler.GetForceTrend).Methods("GET", "OPTIONS")
	org.HandleFunc("/trends/voice-quality", analyticsHandler.GetVoiceQualityTrend).Methods("GET", "OPTIONS")
	org.HandleFunc("/engagement", analyticsHandler.GetEngagement).Methods("GET", "OPTIONS")
	org.HandleFunc("/anomalies", analyticsHandler.GetAnomalies).Methods("GET", "OPTIONS")
	org.HandleFunc("/realtime", analyticsHandler.GetRealtime).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
