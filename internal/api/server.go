package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/tendercraft/internal/config"
	"github.com/dgallion1/tendercraft/internal/llm"
	"github.com/dgallion1/tendercraft/internal/projectstore"
	"github.com/dgallion1/tendercraft/internal/render"
	"github.com/dgallion1/tendercraft/internal/tender"
)

// Server is the HTTP API server for tendercraft.
type Server struct {
	router   chi.Router
	svc      *tender.Service
	sessions *tender.SessionStore
	projects *projectstore.Client
	client   llm.Client
	preview  *render.Previewer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(svc *tender.Service, sessions *tender.SessionStore, projects *projectstore.Client, client llm.Client, log *slog.Logger, cfg config.Config) (*Server, error) {
	preview, err := render.NewPreviewer(cfg.PreviewCacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{
		svc:      svc,
		sessions: sessions,
		projects: projects,
		client:   client,
		preview:  preview,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s, nil
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
		r.Use(AuthMiddleware(s.cfg.TendercraftAPIKey, s.log))

		r.Post("/api/sessions", s.handleCreateSession)
		r.Get("/api/sessions/{sessionID}", s.handleGetSession)
		r.Delete("/api/sessions/{sessionID}", s.handleDeleteSession)

		r.Post("/api/sessions/{sessionID}/chat", s.handleChat)
		r.Get("/api/sessions/{sessionID}/chat/ws", s.handleChatWS)
		r.Post("/api/sessions/{sessionID}/analyze", s.handleAnalyze)
		r.Post("/api/sessions/{sessionID}/import", s.handleImport)

		r.Post("/api/sessions/{sessionID}/outline/sections", s.handleOutlineAppend)
		r.Put("/api/sessions/{sessionID}/outline/sections/{index}", s.handleOutlineEdit)
		r.Delete("/api/sessions/{sessionID}/outline/sections/{index}", s.handleOutlineDelete)
		r.Post("/api/sessions/{sessionID}/outline/sections/{index}/move", s.handleOutlineMove)

		r.Post("/api/sessions/{sessionID}/draft", s.handleGenerateDraft)
		r.Put("/api/sessions/{sessionID}/draft", s.handleEditDraft)
		r.Delete("/api/sessions/{sessionID}/draft", s.handleCloseDraft)
		r.Post("/api/sessions/{sessionID}/draft/view", s.handleDraftView)
		r.Post("/api/sessions/{sessionID}/draft/review", s.handleReview)

		r.Get("/api/sessions/{sessionID}/preview", s.handlePreview)
		r.Get("/api/sessions/{sessionID}/export/markdown", s.handleExportMarkdown)
		r.Get("/api/sessions/{sessionID}/export/docx", s.handleExportDocx)

		r.Get("/api/templates/{domain}", s.handleTemplates)
		r.Get("/api/clauses/{domain}", s.handleClauses)

		r.Post("/api/projects/{name}/save", s.handleSaveProject)
		r.Get("/api/projects/{name}", s.handleGetProject)
		r.Get("/api/projects", s.handleListProjects)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// session resolves the session from the URL, writing a 404 when absent.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *tender.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
	}
	return sess
}
