// Package sessions keeps engine sessions in memory for the HTTP API.
// Each session is serialized behind its own mutex; the engine itself is
// not safe for concurrent use.
package sessions

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/neonsums/internal/engine"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrInvalidID = errors.New("invalid session ID")
)

// Entry is one hosted session.
type Entry struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	session  *engine.Session
	lastUsed time.Time
	recorded bool // score saved for the current game over
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(s *engine.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastUsed = time.Now()
	err := fn(e.session)
	if e.session.Status() != engine.StatusLost {
		e.recorded = false
	}
	return err
}

// Snapshot returns a copy of the session state.
func (e *Entry) Snapshot() engine.SessionSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Snapshot()
}

// ClaimRecord reports true the first time it is called for a lost game.
// It must be called from inside Do.
func (e *Entry) ClaimRecord() bool {
	if e.recorded || e.session.Status() != engine.StatusLost {
		return false
	}
	e.recorded = true
	return true
}

// LastUsed returns the time of the most recent Do call.
func (e *Entry) LastUsed() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastUsed
}

// Manager handles session lifecycle.
type Manager struct {
	sessions map[string]*Entry
	mu       sync.RWMutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Entry),
	}
}

// Create starts a new session and registers it under a fresh UUID.
func (m *Manager) Create(cfg engine.SessionConfig) (*Entry, error) {
	s, err := engine.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return m.Add(s), nil
}

// CreateFrom starts a session on an existing board and hosts it.
func (m *Manager) CreateFrom(cfg engine.SessionConfig, tiles []engine.Tile, score int) (*Entry, error) {
	s, err := engine.NewSessionFrom(cfg, tiles, score)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return m.Add(s), nil
}

// Add hosts an existing session under a fresh UUID.
func (m *Manager) Add(s *engine.Session) *Entry {
	now := time.Now()
	e := &Entry{
		ID:        uuid.NewString(),
		CreatedAt: now,
		session:   s,
		lastUsed:  now,
	}

	m.mu.Lock()
	m.sessions[e.ID] = e
	m.mu.Unlock()

	return e
}

// Get retrieves a session by ID.
func (m *Manager) Get(id string) (*Entry, error) {
	key, err := normalizeID(id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if e, ok := m.sessions[key]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	key, err := normalizeID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[key]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, key)
	return nil
}

// List returns all sessions, oldest first.
func (m *Manager) List() []*Entry {
	m.mu.RLock()
	result := make([]*Entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		result = append(result, e)
	}
	m.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Len returns the number of hosted sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Prune removes sessions idle for longer than maxIdle and returns how many
// were removed.
func (m *Manager) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if e.LastUsed().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// normalizeID validates a UUID and returns its canonical form.
func normalizeID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return u.String(), nil
}
