package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jackzampolin/draftcheck/internal/api"
	"github.com/jackzampolin/draftcheck/internal/segment"
)

// Options configures a Session.
type Options struct {
	// Language is the initial feedback language (default en).
	Language api.Language
	// AssignmentID pins drafts to an existing assignment. When zero, one is
	// created on first use and reused for the rest of the session.
	AssignmentID int
	// AssignmentTitle names an assignment the session creates.
	AssignmentTitle string
	Logger          *slog.Logger
}

// Session is one workflow instance. It is safe for concurrent use, but
// actions started while another is in flight fail with ErrBusy, and edits
// while a report is shown fail with ErrReportOpen.
type Session struct {
	mu           sync.Mutex
	id           string
	backend      Backend
	logger       *slog.Logger
	state        State
	assignmentID int
	title        string
	listeners    []func(Event)
}

// New creates a session in the Editing stage with one empty segment.
func New(backend Backend, opts Options) *Session {
	lang := opts.Language
	if lang == "" {
		lang = api.LanguageEnglish
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:           id,
		backend:      backend,
		logger:       logger.With("session_id", id),
		state:        initialState(lang),
		assignmentID: opts.AssignmentID,
		title:        opts.AssignmentTitle,
	}
}

// ID returns the session's identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// OnChange registers a listener called after every change. Listeners run
// outside the session lock and may call back into the session.
func (s *Session) OnChange(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Stage returns the current stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stage
}

// update applies fn under the lock. When fn reports a change, listeners are
// notified afterwards with a snapshot.
func (s *Session) update(kind EventKind, fn func(st *State) bool) {
	s.mutate(func(st *State) EventKind {
		if fn(st) {
			return kind
		}
		return ""
	})
}

// mutate is update for changes whose kind is only known once the state has
// been inspected. fn returns "" when it changed nothing.
func (s *Session) mutate(fn func(st *State) EventKind) {
	s.mu.Lock()
	kind := fn(&s.state)
	if kind == "" {
		s.mu.Unlock()
		return
	}
	snap := s.state.clone()
	listeners := make([]func(Event), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(Event{Kind: kind, State: snap})
	}
}

// notEditing explains why an action cannot start in stage.
func notEditing(stage Stage) error {
	if stage == StageResult {
		return ErrReportOpen
	}
	return ErrBusy
}

// editing runs fn only when the session is in the Editing stage.
func (s *Session) editing(kind EventKind, fn func(st *State) error) error {
	var err error
	s.update(kind, func(st *State) bool {
		if st.Stage != StageEditing {
			err = notEditing(st.Stage)
			return false
		}
		err = fn(st)
		return err == nil
	})
	return err
}

// EditSegment replaces the body of segment i. Nothing else changes.
func (s *Session) EditSegment(i int, body string) error {
	return s.editing(EventEdit, func(st *State) error {
		next, err := segment.Update(st.Segments, i, body)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSegmentIndex, err)
		}
		st.Segments = next
		return nil
	})
}

// SetReflection sets the optional reflection text.
func (s *Session) SetReflection(text string) error {
	return s.editing(EventEdit, func(st *State) error {
		st.Reflection = text
		return nil
	})
}

// SetLanguage selects the feedback language.
func (s *Session) SetLanguage(lang api.Language) error {
	if lang != api.LanguageEnglish && lang != api.LanguageHindi {
		return ErrInvalidLanguage
	}
	return s.editing(EventEdit, func(st *State) error {
		st.Language = lang
		return nil
	})
}

// Reset discards the draft and returns to a fresh Editing state. The
// selected language and the session's assignment are kept.
func (s *Session) Reset() error {
	busy := false
	s.update(EventStage, func(st *State) bool {
		if st.Stage == StageReading || st.Stage == StageChecking {
			busy = true
			return false
		}
		*st = initialState(st.Language)
		return true
	})
	if busy {
		return ErrBusy
	}
	s.logger.Debug("session reset")
	return nil
}

// ensureAssignment returns the session's assignment id, creating the
// assignment on first use.
func (s *Session) ensureAssignment(ctx context.Context, title string) (int, error) {
	s.mu.Lock()
	id := s.assignmentID
	if s.title != "" {
		title = s.title
	}
	s.mu.Unlock()
	if id != 0 {
		return id, nil
	}

	a, err := s.backend.CreateAssignment(ctx, title)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.assignmentID = a.ID
	s.mu.Unlock()
	s.logger.Info("assignment created", "assignment_id", a.ID, "title", a.Title)
	return a.ID, nil
}

// AssignmentID returns the assignment drafts are filed under, 0 if none yet.
func (s *Session) AssignmentID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignmentID
}
