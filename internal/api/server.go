package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nvarma/resumind/internal/config"
	"github.com/nvarma/resumind/internal/pipeline"
	"github.com/nvarma/resumind/internal/store"
)

// Server is the HTTP API server for resumind.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        st,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/parse", s.handleParse)
		r.Post("/api/parse/batch", s.handleBatchParse)
		r.Get("/api/parse/batch/{jobID}/status", s.handleBatchStatus)
		r.Get("/api/stats/parse", s.handleParseStats)

		r.Post("/api/documents", s.handleSaveDocument)
		r.Get("/api/documents/{filename}", s.handleDownload)

		r.Post("/api/labelstudio/export", s.handleLabelStudioExport)
		r.Post("/api/labelstudio/import", s.handleLabelStudioImport)
		r.Get("/api/labelstudio/projects", s.handleLabelStudioProjects)
		r.Get("/api/labelstudio/status", s.handleLabelStudioStatus)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
