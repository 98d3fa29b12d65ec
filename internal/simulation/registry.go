package simulation

import (
	"sync"

	"go.uber.org/zap"

	"ciso-sim/internal/domain"
)

// Session wraps one live engine behind a mutex. The engine itself is
// lock-free; decision submissions for a session are serialized here.
type Session struct {
	ID string

	mu     sync.Mutex
	engine *Engine
}

// CurrentPresentable returns the session's current decision point.
func (s *Session) CurrentPresentable() (Presentable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CurrentPresentable()
}

// ApplyOption resolves one decision for this session.
func (s *Session) ApplyOption(optionID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ApplyOption(optionID)
}

// State returns a snapshot of the session's player state.
func (s *Session) State() domain.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Registry is the in-memory store of active sessions. There is no expiry;
// callers delete sessions once they report finished.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *zap.Logger
}

// NewRegistry builds an empty session store.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		log:      log,
	}
}

// Create constructs an engine for the scenario and team and stores it under
// the given id, replacing any previous session with that id.
func (r *Registry) Create(id string, scenario *domain.Scenario, members []domain.CharacterSpec, settings Settings, opts ...Option) *Session {
	session := &Session{
		ID:     id,
		engine: NewEngine(scenario, members, settings, opts...),
	}
	r.mu.Lock()
	r.sessions[id] = session
	r.mu.Unlock()
	r.log.Info("session created",
		zap.String("session_id", id),
		zap.String("scenario", scenario.ID),
		zap.Int("team_size", len(members)),
	)
	return session
}

// Get looks up a live session.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
