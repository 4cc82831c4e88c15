package session

import "sync"

// Manager keeps one session per user and serializes transitions for the
// same user: a second message from a user queues behind the in-flight
// one, while different users proceed concurrently.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*userSession
}

type userSession struct {
	mu      sync.Mutex
	pending Pending
}

// NewManager constructs an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*userSession)}
}

func (m *Manager) session(userID int64) *userSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &userSession{}
		m.sessions[userID] = s
	}
	return s
}

// Do runs fn against the user's pending state under the per-user lock
// and stores the resulting state. fn typically wraps Transition plus
// any follow-up state adjustment.
func (m *Manager) Do(userID int64, fn func(Pending) (Pending, []Effect)) []Effect {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	next, effects := fn(s.pending)
	s.pending = next
	return effects
}

// PendingFor reports the user's current pending question (nil if none).
func (m *Manager) PendingFor(userID int64) Pending {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Reset clears the user's conversation state.
func (m *Manager) Reset(userID int64) {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}
