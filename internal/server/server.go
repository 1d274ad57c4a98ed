// Package server provides the HTTP API for the valentino poem generator.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/valentino/internal/llm"
	"github.com/jonathan/valentino/internal/poem"
	"github.com/jonathan/valentino/internal/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	llmClient   llm.Client
	generator   *poem.Generator
	rateLimiter *ratelimit.Limiter
	healthGroup singleflight.Group
}

// Config holds server configuration
type Config struct {
	Port        int
	APIKey      string
	Model       string
	Temperature float64
}

// New creates a new server instance. The API key must be present; a missing
// credential is a startup failure, not a per-request one.
func New(ctx context.Context, cfg Config) (*Server, error) {
	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(cfg.Model)
	}
	if cfg.Temperature > 0 {
		llmConfig.Temperature = float32(cfg.Temperature)
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	s := &Server{
		llmClient:   client,
		generator:   poem.NewGenerator(client),
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Generation holds the response open for the upstream call
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// handler builds the route table wrapped in the middleware chain.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/poem", s.handleGeneratePoem)
	mux.HandleFunc("GET /poem", s.handleSharedPoem)
	mux.HandleFunc("POST /api/share", s.handleCreateShare)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing LLM client: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := ratelimit.ClientIP(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request ID
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()[:8]
		start := time.Now()
		log.Printf("[%s] %s %s from %s", reqID, r.Method, r.URL.Path, ratelimit.ClientIP(r))
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", reqID, r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", int(info.Reset.Seconds())))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with a reset hint.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	resetSeconds := int(info.Reset.Seconds())
	w.Header().Set("Retry-After", fmt.Sprintf("%d", resetSeconds))

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Reset=%ds", info.Limit, resetSeconds)

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error": "Too many poems requested. Take a breath and try again in a minute.",
		"reset": resetSeconds,
	})
}
