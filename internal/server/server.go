// Package server provides the HTTP API for the marketing site and the
// admin dashboard.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/LukhazD/germany-const-landing/internal/auth"
	"github.com/LukhazD/germany-const-landing/internal/config"
	"github.com/LukhazD/germany-const-landing/internal/db"
	"github.com/LukhazD/germany-const-landing/internal/errs"
	"github.com/LukhazD/germany-const-landing/internal/intake"
	"github.com/LukhazD/germany-const-landing/internal/reporting"
	"github.com/LukhazD/germany-const-landing/internal/storage"
)

// adminTokenCookie carries the admin session token.
const adminTokenCookie = "admin_token"

// CVStore is the object-storage surface the download handler needs.
type CVStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, string, error)
	ResolveObjectURL(ref string) string
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	db         *db.DB
	pipeline   *intake.Pipeline
	reports    *reporting.Service
	authSvc    *auth.Service
	cvs        CVStore
}

// New creates a server instance wired to the given configuration.
func New(cfg *config.Config, port int) (*Server, error) {
	database := db.New(cfg.DatabaseURL)

	store, err := storage.New(cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	authSvc := auth.NewService(cfg.JWT, cfg.Admin)

	s := &Server{
		db:       database,
		pipeline: intake.New(database, database, database, store, authSvc),
		reports:  reporting.New(database, database, authSvc),
		authSvc:  authSvc,
		cvs:      store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Public endpoints
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/job-offers", s.handleListActiveOffers)
	mux.HandleFunc("GET /api/job-offers/{slug}", s.handleGetOfferBySlug)
	mux.HandleFunc("POST /api/job-applications", s.handleSubmitApplication)
	mux.HandleFunc("POST /api/analysis", s.handleSubmitAnalysis)

	// Admin endpoints
	mux.HandleFunc("GET /api/admin/job-offers", s.handleListOffersWithStats)
	mux.HandleFunc("POST /api/admin/job-offers", s.handleCreateOffer)
	mux.HandleFunc("PUT /api/admin/job-offers/{id}", s.handleUpdateOffer)
	mux.HandleFunc("DELETE /api/admin/job-offers/{id}", s.handleDeleteOffer)
	mux.HandleFunc("GET /api/admin/analyses", s.handleListAnalyses)
	mux.HandleFunc("DELETE /api/admin/analyses/{id}", s.handleDeleteAnalysis)
	mux.HandleFunc("PUT /api/admin/applications/{id}", s.handleUpdateApplicationStatus)
	mux.HandleFunc("GET /api/admin/download-cv", s.handleDownloadCV)

	corsHandler := cors.New(cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withLogging(corsHandler.Handler(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// EnsureSchema applies the database schema. Called once at startup;
// this is also the first connection attempt.
func (s *Server) EnsureSchema(ctx context.Context) error {
	return s.db.EnsureSchema(ctx)
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
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

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// adminToken reads the session token cookie; empty when absent.
func adminToken(r *http.Request) string {
	cookie, err := r.Cookie(adminTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse maps a pipeline or reporting error to its HTTP status
// and writes the error body. Validation errors carry field detail.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}

	body := map[string]any{"error": err.Error()}
	var validation *errs.ValidationError
	if errors.As(err, &validation) {
		body["fields"] = validation.Fields
	}
	s.jsonResponse(w, status, body)
}
