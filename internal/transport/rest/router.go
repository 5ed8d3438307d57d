package rest

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"excel-interviewer/internal/repository"
	"excel-interviewer/internal/service"
	"excel-interviewer/internal/transport/rest/handler"
	"excel-interviewer/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	InterviewService *service.InterviewService
	EvaluatorService *service.EvaluatorService
	Questions        repository.QuestionRepo
	Logger           *zap.Logger
	RateLimit        int
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	interviewHandler := handler.NewInterviewHandler(c.InterviewService)
	questionHandler := handler.NewQuestionHandler(c.Questions)
	evaluateHandler := handler.NewEvaluateHandler(c.EvaluatorService, c.Questions)

	// Initialize middleware
	loggingMW := middleware.NewLoggingMiddleware(c.Logger)
	rateLimit := c.RateLimit
	if rateLimit <= 0 {
		rateLimit = 100
	}
	rateLimitMW := middleware.NewRateLimitMiddleware(rateLimit, time.Minute)

	// CORS first, then security headers, logging and rate limiting
	r.Use(corsMiddleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(loggingMW.Handler)
	r.Use(rateLimitMW.Handler)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Evaluation pipeline counters
	r.HandleFunc("/health/stats", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(c.EvaluatorService.Stats())
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/interviews", interviewHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{sessionId}", interviewHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/interviews/{sessionId}", interviewHandler.Cancel).Methods("DELETE", "OPTIONS")
	v1.HandleFunc("/interviews/{sessionId}/responses", interviewHandler.SubmitResponse).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{sessionId}/pause", interviewHandler.Pause).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{sessionId}/resume", interviewHandler.Resume).Methods("POST", "OPTIONS")
	v1.HandleFunc("/interviews/{sessionId}/assessment", interviewHandler.Assessment).Methods("GET", "OPTIONS")

	v1.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions/statistics", questionHandler.Statistics).Methods("GET", "OPTIONS")

	v1.HandleFunc("/evaluate", evaluateHandler.Evaluate).Methods("POST", "OPTIONS")

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
