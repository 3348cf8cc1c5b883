package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/outlinetree/internal/config"
	"github.com/dgallion1/outlinetree/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for outline parsing and navigation.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
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
		r.Use(AuthMiddleware(s.cfg.OutlineAPIKey, s.log))

		r.Post("/api/outlines", s.handleUpload)
		r.Post("/api/outlines/batch", s.handleBatchUpload)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats/parse", s.handleParseStats)

		r.Get("/api/outlines", s.handleListOutlines)
		r.Route("/api/outlines/{id}", func(r chi.Router) {
			r.Use(s.outlineCtx)
			r.Get("/", s.handleGetOutline)
			r.Delete("/", s.handleDeleteOutline)
			r.Get("/render", s.handleRender)

			r.Get("/index", s.handleIndex)
			r.Get("/parent", s.handleParent)
			r.Get("/count", s.handleCount)
			r.Get("/data", s.handleData)
			r.Get("/headers", s.handleHeaders)
			r.Get("/children", s.handleChildren)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
