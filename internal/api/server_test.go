package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/tendercraft/internal/config"
	"github.com/dgallion1/tendercraft/internal/llm"
	"github.com/dgallion1/tendercraft/internal/tender"
)

const testAPIKey = "test-key"

type stubClient struct {
	reply   string
	jsonDoc string
	err     error
}

func (c *stubClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func (c *stubClient) CompleteJSON(ctx context.Context, system, prompt string) (json.RawMessage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return json.RawMessage(c.jsonDoc), nil
}

func (c *stubClient) Name() string             { return "stub" }
func (c *stubClient) Stats() llm.StatsSnapshot { return llm.StatsSnapshot{} }
func (c *stubClient) Close()                   {}

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		TendercraftAPIKey: testAPIKey,
		MaxUploadBytes:    1 << 20,
		MaxReviewChars:    20000,
		PreviewCacheSize:  8,
	}
	svc := tender.NewService(client, tender.NewCatalog(), log, cfg.MaxReviewChars)
	sessions := tender.NewSessionStore(time.Hour)
	srv, err := NewServer(svc, sessions, nil, client, log, cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func createSession(t *testing.T, srv *Server) string {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status = %d, want 201", w.Code)
	}
	var snap tender.Snapshot
	decodeBody(t, w, &snap)
	if snap.ID == "" {
		t.Fatal("create session: empty session id")
	}
	return snap.ID
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	id := createSession(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get session: status = %d, want 200", w.Code)
	}

	w = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete session: status = %d, want 204", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted session: status = %d, want 404", w.Code)
	}
}

func TestChatAppendsTurns(t *testing.T) {
	srv := newTestServer(t, &stubClient{reply: "Tell me more about the scope."})
	id := createSession(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/chat", map[string]string{
		"message": "We need a new warehouse management system.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat: status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Reply string `json:"reply"`
		Turns int    `json:"turns"`
	}
	decodeBody(t, w, &resp)
	if resp.Reply != "Tell me more about the scope." {
		t.Errorf("reply = %q", resp.Reply)
	}
	if resp.Turns != 2 {
		t.Errorf("turns = %d, want 2", resp.Turns)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	id := createSession(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/chat", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

const analysisDoc = `{
	"keyPoints": ["New warehouse management system", "Go-live within 9 months"],
	"domain": "IT",
	"recommendedTemplate": "IT System Procurement RFP",
	"reasoning": "The request centers on software delivery and integration.",
	"structure": ["1. Project Overview", "2. Scope of Work", "3. Technical Requirements"]
}`

func analyzeSession(t *testing.T, srv *Server, id string) {
	t.Helper()
	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/chat", map[string]string{
		"message": "We need a new warehouse management system.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat: status = %d", w.Code)
	}
	w = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/analyze", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analyze: status = %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeRequiresConversation(t *testing.T) {
	srv := newTestServer(t, &stubClient{jsonDoc: analysisDoc})
	id := createSession(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/analyze", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeSeedsOutline(t *testing.T) {
	srv := newTestServer(t, &stubClient{reply: "noted", jsonDoc: analysisDoc})
	id := createSession(t, srv)
	analyzeSession(t, srv, id)

	w := doJSON(t, srv, http.MethodGet, "/api/sessions/"+id, nil)
	var snap tender.Snapshot
	decodeBody(t, w, &snap)
	if !snap.HasAnalysis {
		t.Fatal("session has no analysis after analyze")
	}
	want := []string{"1. Project Overview", "2. Scope of Work", "3. Technical Requirements"}
	if len(snap.Outline) != len(want) {
		t.Fatalf("outline = %v, want %v", snap.Outline, want)
	}
	for i := range want {
		if snap.Outline[i] != want[i] {
			t.Errorf("outline[%d] = %q, want %q", i, snap.Outline[i], want[i])
		}
	}
}

func TestOutlineEndpoints(t *testing.T) {
	srv := newTestServer(t, &stubClient{reply: "noted", jsonDoc: analysisDoc})
	id := createSession(t, srv)
	analyzeSession(t, srv, id)

	// Append a fourth section with the standard skeleton.
	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/outline/sections", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("append: status = %d", w.Code)
	}
	var appendResp struct {
		Section string   `json:"section"`
		Outline []string `json:"outline"`
	}
	decodeBody(t, w, &appendResp)
	if !strings.HasPrefix(appendResp.Section, "4. New Section Title") {
		t.Errorf("appended section = %q", appendResp.Section)
	}
	if len(appendResp.Outline) != 4 {
		t.Fatalf("outline length = %d, want 4", len(appendResp.Outline))
	}

	// Delete the second; later sections renumber.
	w = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+id+"/outline/sections/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	var outResp struct {
		Outline []string `json:"outline"`
	}
	decodeBody(t, w, &outResp)
	if len(outResp.Outline) != 3 {
		t.Fatalf("outline length = %d, want 3", len(outResp.Outline))
	}
	if !strings.HasPrefix(outResp.Outline[1], "2. Technical Requirements") {
		t.Errorf("outline[1] = %q, want renumbered to 2.", outResp.Outline[1])
	}

	// Move the first down.
	w = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/outline/sections/0/move", map[string]string{"direction": "down"})
	if w.Code != http.StatusOK {
		t.Fatalf("move: status = %d", w.Code)
	}
	decodeBody(t, w, &outResp)
	if !strings.HasPrefix(outResp.Outline[0], "1. Technical Requirements") {
		t.Errorf("outline[0] after move = %q", outResp.Outline[0])
	}

	// Out-of-range index fails.
	w = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+id+"/outline/sections/99", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("delete out of range: status = %d, want 400", w.Code)
	}

	// Bad direction fails.
	w = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/outline/sections/0/move", map[string]string{"direction": "sideways"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad direction: status = %d, want 400", w.Code)
	}
}

func TestDraftLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, &stubClient{reply: "# Draft\n\nBody text.", jsonDoc: analysisDoc})
	id := createSession(t, srv)

	// Generating before analyze is rejected.
	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/draft", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("premature generate: status = %d, want 400", w.Code)
	}

	analyzeSession(t, srv, id)

	w = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/draft", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate: status = %d: %s", w.Code, w.Body.String())
	}
	var genResp struct {
		Draft string `json:"draft"`
		State string `json:"state"`
	}
	decodeBody(t, w, &genResp)
	if genResp.State != string(tender.DraftPreview) {
		t.Errorf("state = %q, want preview", genResp.State)
	}
	if genResp.Draft != "# Draft\n\nBody text." {
		t.Errorf("draft = %q", genResp.Draft)
	}

	// Editing is rejected until the session switches to the editing view.
	w = doJSON(t, srv, http.MethodPut, "/api/sessions/"+id+"/draft", map[string]string{"draft": "changed"})
	if w.Code != http.StatusConflict {
		t.Errorf("edit in preview: status = %d, want 409", w.Code)
	}

	w = doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/draft/view", map[string]string{"mode": "editing"})
	if w.Code != http.StatusOK && w.Code != http.StatusNoContent {
		t.Fatalf("set view: status = %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodPut, "/api/sessions/"+id+"/draft", map[string]string{"draft": "# Revised\n\nNew body."})
	if w.Code != http.StatusNoContent {
		t.Fatalf("edit: status = %d, want 204", w.Code)
	}

	// Close resets to absent; export then conflicts.
	w = doJSON(t, srv, http.MethodDelete, "/api/sessions/"+id+"/draft", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("close: status = %d, want 204", w.Code)
	}
	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+id+"/export/markdown", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("export with no draft: status = %d, want 409", w.Code)
	}
}

func TestExportMarkdownAndDocx(t *testing.T) {
	draft := "# Proposal [draft]\n\nIntro paragraph with **bold** text.\n\n- first item\n"
	srv := newTestServer(t, &stubClient{reply: draft, jsonDoc: analysisDoc})
	id := createSession(t, srv)
	analyzeSession(t, srv, id)

	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/draft", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate: status = %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+id+"/export/markdown", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("markdown export: status = %d", w.Code)
	}
	if got := w.Body.String(); got != draft {
		t.Errorf("markdown body = %q, want raw draft", got)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "tender-draft.md") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+id+"/export/docx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("docx export: status = %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Error("docx export is not a zip archive")
	}
}

func TestPreviewReturnsHTML(t *testing.T) {
	srv := newTestServer(t, &stubClient{reply: "# Title\n\nSome *emphasis*.", jsonDoc: analysisDoc})
	id := createSession(t, srv)
	analyzeSession(t, srv, id)

	w := doJSON(t, srv, http.MethodPost, "/api/sessions/"+id+"/draft", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate: status = %d", w.Code)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/sessions/"+id+"/preview", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<h1") {
		t.Errorf("preview body missing heading markup: %q", w.Body.String())
	}
}

func TestCatalogEndpoints(t *testing.T) {
	srv := newTestServer(t, &stubClient{})

	w := doJSON(t, srv, http.MethodGet, "/api/templates/it", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("templates: status = %d", w.Code)
	}
	var tpl struct {
		Domain   string   `json:"domain"`
		Sections []string `json:"sections"`
	}
	decodeBody(t, w, &tpl)
	if tpl.Domain != "IT" || len(tpl.Sections) == 0 {
		t.Errorf("templates = %+v", tpl)
	}

	w = doJSON(t, srv, http.MethodGet, "/api/clauses/it", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clauses: status = %d", w.Code)
	}
	var cl struct {
		Clauses []tender.Clause `json:"clauses"`
	}
	decodeBody(t, w, &cl)
	if len(cl.Clauses) == 0 {
		t.Error("no clauses for IT domain")
	}

	w = doJSON(t, srv, http.MethodGet, "/api/templates/astrology", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown domain: status = %d, want 400", w.Code)
	}
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	srv := newTestServer(t, &stubClient{reply: "noted", err: nil, jsonDoc: `{"broken`})
	id := createSession(t, srv)
	analyzeSession(t, srv, id)

	w := doJSON(t, srv, http.MethodGet, "/api/sessions/"+id, nil)
	var snap tender.Snapshot
	decodeBody(t, w, &snap)
	want := []string{"1. Project Overview", "2. Scope of Work", "3. Pricing"}
	if fmt.Sprint(snap.Outline) != fmt.Sprint(want) {
		t.Errorf("fallback outline = %v, want %v", snap.Outline, want)
	}
}

func TestLLMStatsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubClient{})
	w := doJSON(t, srv, http.MethodGet, "/api/stats/llm", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Provider string `json:"provider"`
	}
	decodeBody(t, w, &resp)
	if resp.Provider != "stub" {
		t.Errorf("provider = %q", resp.Provider)
	}
}
