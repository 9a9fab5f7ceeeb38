package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/tendercraft/internal/render"
	"github.com/dgallion1/tendercraft/internal/tender"
)

// exportDraft fetches the draft for export, or writes a 409 when absent.
func (s *Server) exportDraft(w http.ResponseWriter, r *http.Request) (*tender.Session, string, bool) {
	sess := s.session(w, r)
	if sess == nil {
		return nil, "", false
	}
	draft, state := sess.Draft()
	if state == tender.DraftAbsent || state == tender.DraftGenerating {
		jsonError(w, "no draft to export", http.StatusConflict)
		return nil, "", false
	}
	return sess, draft, true
}

func exportName(sess *tender.Session) string {
	if name := sess.ProjectName(); name != "" {
		return name
	}
	return "tender-draft"
}

func (s *Server) handleExportMarkdown(w http.ResponseWriter, r *http.Request) {
	sess, draft, ok := s.exportDraft(w, r)
	if !ok {
		return
	}

	// Raw draft bytes, byte-for-byte: provenance suffixes stay intact.
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(sess)+".md"))
	w.Write([]byte(draft))
}

func (s *Server) handleExportDocx(w http.ResponseWriter, r *http.Request) {
	sess, draft, ok := s.exportDraft(w, r)
	if !ok {
		return
	}

	// Build the whole artifact before touching the response so a packing
	// failure yields an error, never a partial file.
	nodes := render.ParseDraft(draft)
	var buf bytes.Buffer
	if err := render.WriteDocx(nodes, &buf); err != nil {
		s.log.Error("docx export failed", "session_id", sess.ID, "error", err)
		jsonError(w, "export failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(sess)+".docx"))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}
