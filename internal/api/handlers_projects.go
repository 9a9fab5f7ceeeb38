package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/tendercraft/internal/projectstore"
	"github.com/dgallion1/tendercraft/internal/tender"
)

type saveProjectRequest struct {
	SessionID string `json:"session_id"`
}

// handleSaveProject persists a session's outline and draft under a project
// name. The draft field is null when no draft exists yet.
func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	if s.projects == nil {
		jsonError(w, "project store not configured", http.StatusServiceUnavailable)
		return
	}

	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		jsonError(w, "project name is required", http.StatusBadRequest)
		return
	}

	var req saveProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := s.sessions.Get(req.SessionID)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	sess.SetProjectName(name)
	sess.MarkSaveIntent(true)

	draftText, state := sess.Draft()
	rec := projectstore.Record{
		Name:      name,
		Structure: sess.OutlineSections(),
		Status:    string(state),
	}
	if state != tender.DraftAbsent && state != tender.DraftGenerating {
		rec.Draft = &draftText
	}

	if err := s.projects.Save(r.Context(), rec); err != nil {
		s.log.Error("project save failed", "project", name, "error", err)
		jsonError(w, "save failed", http.StatusBadGateway)
		return
	}
	sess.MarkSaveIntent(false)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":  name,
		"saved": true,
	})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	if s.projects == nil {
		jsonError(w, "project store not configured", http.StatusServiceUnavailable)
		return
	}

	name := chi.URLParam(r, "name")
	rec, err := s.projects.Get(r.Context(), name)
	if err != nil {
		s.log.Error("project get failed", "project", name, "error", err)
		jsonError(w, "project store unavailable", http.StatusBadGateway)
		return
	}
	if rec == nil {
		jsonError(w, "project not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if s.projects == nil {
		jsonError(w, "project store not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			jsonError(w, "limit must be between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recs, err := s.projects.List(r.Context(), limit)
	if err != nil {
		s.log.Error("project list failed", "error", err)
		jsonError(w, "project store unavailable", http.StatusBadGateway)
		return
	}
	if recs == nil {
		recs = []projectstore.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"projects": recs,
		"count":    len(recs),
	})
}
