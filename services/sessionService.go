package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"taskcraft/models"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrDuplicateSession  = errors.New("session already exists")
	ErrInvalidTransition = errors.New("invalid step transition")
)

// Session is one conversation's state: the unit being designed, the
// ordered transcript, and a small key/value scratch space. A session is
// not safe for concurrent turns; callers serialize on Lock/Unlock for the
// duration of a turn.
type Session struct {
	ID         string
	Unit       models.UnitState
	Transcript []models.Message
	values     map[string]any
	mu         sync.Mutex
}

// Lock serializes turns on this session. The completion call happens with
// this lock held, which only blocks turns for the same session id.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

func (s *Session) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *Session) Set(key string, value any) {
	s.values[key] = value
}

func (s *Session) AppendMessage(role, content string) {
	s.Transcript = append(s.Transcript, models.Message{Role: role, Content: content})
}

// AdvanceStep moves the session forward by at most one step. Backward and
// skipping transitions fail with ErrInvalidTransition; staying on the
// current step is a no-op.
func (s *Session) AdvanceStep(newStep models.Step) error {
	currentIdx := s.Unit.CurrentStep.Index()
	newIdx := newStep.Index()

	if newIdx < 0 {
		return fmt.Errorf("%w: unknown step %q", ErrInvalidTransition, newStep)
	}
	if newIdx < currentIdx {
		return fmt.Errorf("%w: cannot move from %s back to %s", ErrInvalidTransition, s.Unit.CurrentStep, newStep)
	}
	if newIdx > currentIdx+1 {
		return fmt.Errorf("%w: cannot skip from %s to %s", ErrInvalidTransition, s.Unit.CurrentStep, newStep)
	}

	s.Unit.CurrentStep = newStep
	return nil
}

// Snapshot deep-copies the session for read-only exposure. Callers hold
// the session lock.
func (s *Session) Snapshot() models.SessionState {
	transcript := make([]models.Message, len(s.Transcript))
	copy(transcript, s.Transcript)

	unit := s.Unit
	unit.CandidateTaskIdeas = append([]models.TaskIdea(nil), s.Unit.CandidateTaskIdeas...)
	unit.CandidateFocusTopics = append([]models.FocusTopic(nil), s.Unit.CandidateFocusTopics...)
	unit.SelectedFocusTopics = append([]models.FocusTopic(nil), s.Unit.SelectedFocusTopics...)
	unit.CandidateProductOptions = append([]models.ProductOption(nil), s.Unit.CandidateProductOptions...)
	unit.SelectedProductOptions = append([]models.ProductOption(nil), s.Unit.SelectedProductOptions...)
	if s.Unit.SelectedTaskIdea != nil {
		idea := *s.Unit.SelectedTaskIdea
		unit.SelectedTaskIdea = &idea
	}

	return models.SessionState{
		SessionID:  s.ID,
		Unit:       unit,
		Transcript: transcript,
	}
}

// SessionService owns the process-wide session table. The table lock only
// guards the map itself and is never held across a completion call.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService() *SessionService {
	return &SessionService{
		sessions: make(map[string]*Session),
	}
}

// CreateSession registers a new session with immutable unit fields and the
// initial step. Reusing an id fails with ErrDuplicateSession; ids are
// never silently overwritten.
func (s *SessionService) CreateSession(id, topic, unitTitle, gradeLabel string) (*Session, error) {
	log.Printf("[INFO] Starting session creation for ID %s", id)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; exists {
		log.Printf("[ERROR] Session ID %s already exists", id)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSession, id)
	}

	session := &Session{
		ID: id,
		Unit: models.UnitState{
			Topic:       strings.TrimSpace(topic),
			UnitTitle:   strings.TrimSpace(unitTitle),
			GradeLabel:  strings.TrimSpace(gradeLabel),
			CurrentStep: models.StepTaskIdeas,
		},
		values: make(map[string]any),
	}
	s.sessions[id] = session

	log.Printf("[INFO] Successfully created session %s for topic %q", id, session.Unit.Topic)
	return session, nil
}

func (s *SessionService) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// ListSessions returns snapshots of every live session.
func (s *SessionService) ListSessions() []models.SessionState {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	states := make([]models.SessionState, 0, len(sessions))
	for _, session := range sessions {
		session.Lock()
		states = append(states, session.Snapshot())
		session.Unlock()
	}
	return states
}

func (s *SessionService) DeleteSession(id string) error {
	log.Printf("[INFO] Starting delete session %s", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		log.Printf("[ERROR] Cannot delete unknown session %s", id)
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	delete(s.sessions, id)
	log.Printf("[INFO] Successfully deleted session %s", id)
	return nil
}
