// Package api provides the analysis HTTP server.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Version reported by the root endpoint.
const Version = "0.1.0"

// Origins allowed to call the API: local dev frontends and the browser
// extension.
var allowedOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://localhost:5173": true,
}

// Server is the analysis API server.
type Server struct {
	analyzer Analyzer
	logger   *zap.Logger
	limiter  *rate.Limiter
	mux      *http.ServeMux
}

// Config holds API server configuration.
type Config struct {
	Analyzer Analyzer
	Logger   *zap.Logger
	// Requests per second across the instance; 0 disables limiting.
	RateLimit float64
	RateBurst int
}

// NewServer creates the API server.
func NewServer(cfg Config) *Server {
	s := &Server{
		analyzer: cfg.Analyzer,
		logger:   cfg.Logger,
		mux:      http.NewServeMux(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst == 0 {
			burst = int(cfg.RateLimit)
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /", s.handleRoot)
	s.mux.HandleFunc("POST /analyze/text", s.handleAnalyzeText)
	s.mux.HandleFunc("POST /analyze/image", s.handleAnalyzeImage)
	s.mux.HandleFunc("POST /analyze/audio", s.handleAnalyzeAudio)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if allowedOrigins[origin] || isExtensionOrigin(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if s.limiter != nil && !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many requests")
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	s.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	s.mux.ServeHTTP(w, r)
}

func isExtensionOrigin(origin string) bool {
	const prefix = "chrome-extension://"
	return len(origin) > len(prefix) && origin[:len(prefix)] == prefix
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "Catfish API",
		"version": Version,
		"status":  "running",
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": message, "code": code})
}

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
