package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/tendercraft/internal/tender"
)

func (s *Server) handleGenerateDraft(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	if err := sess.BeginGenerate(); err != nil {
		switch {
		case errors.Is(err, tender.ErrGenerating):
			jsonError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, tender.ErrNotReady):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// Generation failures arrive as the in-band placeholder; the session
	// always lands in preview.
	analysis := sess.Analysis()
	text := s.svc.GenerateDraft(r.Context(), *analysis, sess.OutlineSections())
	sess.CompleteGenerate(text)

	draft, state := sess.Draft()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"draft": draft,
		"state": state,
	})
}

func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Draft string `json:"draft"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := sess.EditDraft(req.Draft); err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseDraft(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.CloseDraft()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDraftView(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var state tender.DraftState
	switch req.Mode {
	case "preview":
		state = tender.DraftPreview
	case "editing":
		state = tender.DraftEditing
	default:
		jsonError(w, `mode must be "preview" or "editing"`, http.StatusBadRequest)
		return
	}

	if err := sess.SetView(state); err != nil {
		jsonError(w, err.Error(), http.StatusConflict)
		return
	}

	_, current := sess.Draft()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"state": current})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		jsonError(w, "role is required", http.StatusBadRequest)
		return
	}

	draft, state := sess.Draft()
	if state == tender.DraftAbsent || state == tender.DraftGenerating {
		jsonError(w, "no draft to review", http.StatusConflict)
		return
	}

	domain := tender.DomainUnspecified
	if a := sess.Analysis(); a != nil {
		domain = a.Domain
	}
	review := s.svc.Review(r.Context(), draft, req.Role, domain)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"review": review})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	draft, state := sess.Draft()
	if state == tender.DraftAbsent || state == tender.DraftGenerating {
		jsonError(w, "no draft to preview", http.StatusConflict)
		return
	}

	html, err := s.preview.HTML(draft)
	if err != nil {
		jsonError(w, "preview failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
