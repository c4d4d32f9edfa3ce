// Package server provides the HTTP REST API for the job application
// pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/divyansh1099/AI-jobs/internal/ingestion"
	"github.com/divyansh1099/AI-jobs/internal/types"
)

// Pipeline is the coordinator surface the server controls.
type Pipeline interface {
	Start(ctx context.Context)
	Stop()
	Stats() types.PipelineStats
}

// Scraper triggers one discovery run.
type Scraper interface {
	Scrape(ctx context.Context, terms, locations []string) ([]*types.JobRecord, error)
}

// JobQueue is the queue surface for enqueue and listing.
type JobQueue interface {
	EnqueueJob(data types.JobCreate) *types.JobRecord
	RemoveByID(id string)
	SnapshotAll() []*types.JobRecord
	Len() int
}

// Ingestor extracts posting content from a URL, used to enrich
// submissions that carry only a link.
type Ingestor interface {
	Ingest(ctx context.Context, url string) (*ingestion.Posting, error)
}

// JobStore is the optional persistence surface. A nil store serves job
// listings from the queue instead.
type JobStore interface {
	AddJob(ctx context.Context, job *types.JobRecord) error
	GetJob(ctx context.Context, id string) (*types.JobRecord, error)
	ListJobs(ctx context.Context) ([]*types.JobRecord, error)
	DeleteJob(ctx context.Context, id string) error
	Stats(ctx context.Context) (*types.ApplicationStats, error)
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	pipeline   Pipeline
	scraper    Scraper
	queue      JobQueue
	store      JobStore
	ingestor   Ingestor
	validate   *validator.Validate
	logger     *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// New creates a server. store may be nil when running without
// persistence.
func New(cfg Config, pipeline Pipeline, scraper Scraper, q JobQueue, store JobStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		pipeline: pipeline,
		scraper:  scraper,
		queue:    q,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(s.Routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// WithIngestor enables posting enrichment for jobs submitted without a
// description.
func (s *Server) WithIngestor(ing Ingestor) *Server {
	s.ingestor = ing
	return s
}

// Routes builds the API mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/start", s.handleStart)
	mux.HandleFunc("POST /api/stop", s.handleStop)

	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("POST /api/jobs", s.handleCreateJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", s.handleDeleteJob)

	mux.HandleFunc("POST /api/scrape", s.handleScrape)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	return mux
}

// Start listens until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// withCORS adds permissive CORS headers for the local dashboard.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method, "path", r.URL.Path,
			"remote", r.RemoteAddr, "elapsed", time.Since(start))
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response failed", "error", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
