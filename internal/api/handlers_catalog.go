package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/tendercraft/internal/tender"
)

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	domain, ok := tender.ParseDomain(chi.URLParam(r, "domain"))
	if !ok {
		jsonError(w, "unknown domain", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"domain":   domain,
		"sections": s.svc.Catalog().Sections(domain),
	})
}

func (s *Server) handleClauses(w http.ResponseWriter, r *http.Request) {
	domain, ok := tender.ParseDomain(chi.URLParam(r, "domain"))
	if !ok {
		jsonError(w, "unknown domain", http.StatusBadRequest)
		return
	}

	clauses := s.svc.Catalog().Clauses(domain)
	if clauses == nil {
		clauses = []tender.Clause{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"domain":  domain,
		"clauses": clauses,
	})
}
