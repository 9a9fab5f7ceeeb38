package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/tendercraft/internal/outline"
	"github.com/dgallion1/tendercraft/internal/tender"
)

func (s *Server) handleOutlineAppend(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	section := sess.OutlineAppend()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"section": section,
		"outline": sess.OutlineSections(),
	})
}

func (s *Server) handleOutlineEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	index, ok := outlineIndex(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := sess.OutlineEdit(index, req.Text); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeOutline(w, sess)
}

func (s *Server) handleOutlineDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	index, ok := outlineIndex(w, r)
	if !ok {
		return
	}

	if err := sess.OutlineDelete(index); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeOutline(w, sess)
}

func (s *Server) handleOutlineMove(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	index, ok := outlineIndex(w, r)
	if !ok {
		return
	}

	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var dir outline.Direction
	switch req.Direction {
	case "up":
		dir = outline.DirUp
	case "down":
		dir = outline.DirDown
	default:
		jsonError(w, `direction must be "up" or "down"`, http.StatusBadRequest)
		return
	}

	if err := sess.OutlineMove(index, dir); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeOutline(w, sess)
}

func (s *Server) writeOutline(w http.ResponseWriter, sess *tender.Session) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"outline": sess.OutlineSections()})
}

func outlineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "index must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}
