// Package session holds the per-user exam slot and the generation state
// machine around it.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/abhisek/examgen/internal/examgen"
)

// ErrBusy is returned by Begin while a generation is in flight.
var ErrBusy = errors.New("an exam is already being generated")

// State is the generation state of a session.
type State int

const (
	StateIdle       State = iota // No call in flight; the current exam (if any) is shown
	StateGenerating              // One call in flight
)

func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	default:
		return "idle"
	}
}

// Session is one user's workspace: input settings, the current exam and
// the last error. All methods are safe for concurrent use.
type Session struct {
	ID string

	mu          sync.Mutex
	state       State
	exam        *examgen.Exam
	err         string
	mode        examgen.Mode
	model       string
	apiKey      string
	text        string
	docName     string
	generations int
	startedAt   time.Time
	lastSeen    time.Time
	now         func() time.Time
}

// New creates an idle session in text mode.
func New(id string) *Session {
	return newSession(id, time.Now)
}

func newSession(id string, now func() time.Time) *Session {
	return &Session{ID: id, mode: examgen.ModeText, now: now, lastSeen: now()}
}

// Snapshot is a consistent copy of a session for rendering.
type Snapshot struct {
	ID           string
	State        State
	Exam         *examgen.Exam
	Err          string
	Mode         examgen.Mode
	Model        string
	APIKey       string
	Text         string
	DocumentName string
	Generations  int
	StartedAt    time.Time
}

// Generating reports whether a call is in flight.
func (s Snapshot) Generating() bool {
	return s.State == StateGenerating
}

// HasExam reports whether an exam is available for display.
func (s Snapshot) HasExam() bool {
	return s.Exam != nil
}

// Begin moves Idle to Generating. Only one generation may be outstanding.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateGenerating {
		return ErrBusy
	}
	s.state = StateGenerating
	s.startedAt = s.now()
	s.lastSeen = s.startedAt
	return nil
}

// Complete moves Generating to Idle, replacing the exam and clearing the
// error.
func (s *Session) Complete(exam *examgen.Exam) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.exam = exam
	s.err = ""
	s.generations++
	s.lastSeen = s.now()
}

// Fail moves Generating to Idle and records err. The current exam stays.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.err = err.Error()
	s.lastSeen = s.now()
}

// Reject records an input error without a state transition.
func (s *Session) Reject(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err.Error()
	s.lastSeen = s.now()
}

// ClearError drops the recorded error.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// SetInput stores the form state so it can be shown again.
func (s *Session) SetInput(mode examgen.Mode, text, docName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.text = text
	if docName != "" {
		s.docName = docName
	}
}

// SetModel selects the model for later generations.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
}

// SetAPIKey stores the user-supplied key.
func (s *Session) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
}

// Touch marks the session as used.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:           s.ID,
		State:        s.state,
		Exam:         s.exam,
		Err:          s.err,
		Mode:         s.mode,
		Model:        s.model,
		APIKey:       s.apiKey,
		Text:         s.text,
		DocumentName: s.docName,
		Generations:  s.generations,
		StartedAt:    s.startedAt,
	}
}

// idleSince reports when the session was last used. Generating sessions
// are never idle.
func (s *Session) idleSince() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateGenerating {
		return time.Time{}, false
	}
	return s.lastSeen, true
}
