package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/mdxblog/internal/config"
	"github.com/dgallion1/mdxblog/internal/pipeline"
	"github.com/dgallion1/mdxblog/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front end of the blog.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	renderer     *render.Renderer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		renderer:     renderer,
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
	r.Get("/", s.handleIndex)
	r.Get("/blog/{slug}", s.handlePost)
	r.Get("/api/posts", s.handleListPosts)

	// Admin endpoints, only with a key configured.
	if s.cfg.AdminAPIKey != "" {
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(s.cfg.AdminAPIKey, s.log))

			r.Post("/api/rebuild", s.handleRebuildAll)
			r.Post("/api/rebuild/{slug}", s.handleRebuild)
			r.Get("/api/builds/{jobID}/status", s.handleBuildStatus)
			r.Get("/api/stats/render", s.handleRenderStats)
			r.Post("/api/preview", s.handlePreview)
		})
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"pages":  s.orchestrator.Site().Len(),
	})
}
