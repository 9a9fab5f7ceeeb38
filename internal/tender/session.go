package tender

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/tendercraft/internal/outline"
)

// DraftState is the lifecycle position of a session's draft.
type DraftState string

const (
	DraftAbsent     DraftState = "absent"
	DraftGenerating DraftState = "generating"
	DraftPreview    DraftState = "preview"
	DraftEditing    DraftState = "editing"
)

var (
	// ErrGenerating rejects re-entry while a generation is in flight.
	ErrGenerating = errors.New("draft generation already in flight")
	// ErrNotReady rejects generation without an analysis or with an empty outline.
	ErrNotReady = errors.New("analysis and a non-empty outline are required")
	// ErrNoDraft rejects draft operations while no draft is present.
	ErrNoDraft = errors.New("no draft present")
	// ErrNotEditing rejects manual draft edits outside the editing view.
	ErrNotEditing = errors.New("draft is not in editing view")
)

// Session is the single logical owner of one tender's mutable state:
// conversation log, analysis, outline, draft, project name. All mutations go
// through its mutex so every state change is atomic.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time
	updatedAt time.Time

	projectName  string
	conversation []Message
	analysis     *Analysis
	outline      *outline.Outline
	draftState   DraftState
	draft        string
	savePending  bool
}

func newSession() *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		updatedAt:  now,
		outline:    outline.New(nil),
		draftState: DraftAbsent,
	}
}

// AppendTurn records one conversation turn.
func (s *Session) AppendTurn(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = append(s.conversation, Message{Role: role, Content: content})
	s.updatedAt = time.Now()
}

// Conversation returns a copy of the conversation log.
func (s *Session) Conversation() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.conversation))
	copy(out, s.conversation)
	return out
}

// ConversationLog flattens the conversation for the analysis prompt.
func (s *Session) ConversationLog() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sb strings.Builder
	for _, m := range s.conversation {
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// SetAnalysis stores the analysis record and seeds the outline from its
// structure. A later analysis replaces both.
func (s *Session) SetAnalysis(a Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = &a
	s.outline = outline.New(a.Structure)
	s.updatedAt = time.Now()
}

// Analysis returns the current analysis record, or nil before the first
// analyze call.
func (s *Session) Analysis() *Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		return nil
	}
	a := *s.analysis
	return &a
}

// OutlineSections returns the current outline in display order.
func (s *Session) OutlineSections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outline.Sections()
}

// OutlineAppend appends a skeleton section and returns it.
func (s *Session) OutlineAppend() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	return s.outline.Append()
}

// OutlineDelete removes a section.
func (s *Session) OutlineDelete(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	return s.outline.Delete(index)
}

// OutlineMove swaps a section with its neighbor.
func (s *Session) OutlineMove(index int, dir outline.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	return s.outline.Move(index, dir)
}

// OutlineEdit replaces a section's text verbatim.
func (s *Session) OutlineEdit(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
	return s.outline.Edit(index, text)
}

// BeginGenerate moves absent/preview/editing into generating. It requires an
// analysis and a non-empty outline, and rejects re-entry while generating.
func (s *Session) BeginGenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draftState == DraftGenerating {
		return ErrGenerating
	}
	if s.analysis == nil || s.outline.Len() == 0 {
		return ErrNotReady
	}
	s.draftState = DraftGenerating
	s.updatedAt = time.Now()
	return nil
}

// CompleteGenerate stores the generated text and lands in preview. The text
// may be the in-band error placeholder; the transition is the same either way.
func (s *Session) CompleteGenerate(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
	s.draftState = DraftPreview
	s.updatedAt = time.Now()
}

// SetView toggles between preview and editing. A pure view change: no data
// mutation.
func (s *Session) SetView(state DraftState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state != DraftPreview && state != DraftEditing {
		return errors.New("view must be preview or editing")
	}
	if s.draftState != DraftPreview && s.draftState != DraftEditing {
		return ErrNoDraft
	}
	s.draftState = state
	return nil
}

// EditDraft replaces the draft text while in the editing view.
func (s *Session) EditDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draftState != DraftEditing {
		return ErrNotEditing
	}
	s.draft = text
	s.updatedAt = time.Now()
	return nil
}

// CloseDraft dismisses the draft: back to absent, text cleared. Explicit user
// action only.
func (s *Session) CloseDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = ""
	s.draftState = DraftAbsent
	s.updatedAt = time.Now()
}

// Draft returns the draft text and its lifecycle state.
func (s *Session) Draft() (string, DraftState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.draftState
}

// SetProjectName records the project name used for persistence and export
// filenames.
func (s *Session) SetProjectName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectName = name
	s.updatedAt = time.Now()
}

// ProjectName returns the project name, possibly empty.
func (s *Session) ProjectName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectName
}

// MarkSaveIntent flags that a save has been requested. The view layer polls
// and clears it; the core keeps only the boolean.
func (s *Session) MarkSaveIntent(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savePending = pending
}

// SaveIntent reports whether a save is pending.
func (s *Session) SaveIntent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePending
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID          string     `json:"session_id"`
	ProjectName string     `json:"project_name"`
	Turns       int        `json:"turns"`
	HasAnalysis bool       `json:"has_analysis"`
	Outline     []string   `json:"outline"`
	DraftState  DraftState `json:"draft_state"`
	SavePending bool       `json:"save_pending"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		ProjectName: s.projectName,
		Turns:       len(s.conversation),
		HasAnalysis: s.analysis != nil,
		Outline:     s.outline.Sections(),
		DraftState:  s.draftState,
		SavePending: s.savePending,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.updatedAt,
	}
}

func (s *Session) touchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SessionStore is a thread-safe in-memory session registry with TTL eviction.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new empty session.
func (st *SessionStore) Create() *Session {
	s := newSession()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get returns a session by ID, or nil.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Delete removes a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Cleanup removes sessions idle longer than the TTL.
func (st *SessionStore) Cleanup() {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, s := range st.sessions {
		if now.Sub(s.touchedAt()) > st.ttl {
			delete(st.sessions, id)
		}
	}
}

// StartCleanup runs periodic eviction until ctx is done.
func (st *SessionStore) StartCleanup(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.Cleanup()
			}
		}
	}()
}
