package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/klondike-game/game/engine"
	"github.com/wricardo/klondike-game/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)

// idBytes random bytes make one hex session ID
const idBytes = 2

// Manager keeps every live table in memory, keyed by lowercased session ID.
// Nothing survives a restart.
type Manager struct {
	sessions map[string]*service.Session
	mu       sync.RWMutex
}

// NewManager returns an empty manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

func key(id string) string {
	return strings.ToLower(id)
}

// Create deals a new table for config and stores it under id. An empty id
// gets a random one.
func (m *Manager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Deal outside the lock; NewEngine also validates config
	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case id == "":
		id = m.newID()
	case m.sessions[key(id)] != nil:
		return nil, ErrSessionAlreadyExists
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[key(id)] = sess
	return sess, nil
}

// Get looks a session up without counting it as an access
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[key(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Touch looks a session up and stamps LastAccessedAt, keeping it clear of the
// idle sweep.
func (m *Manager) Touch(id string) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[key(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.LastAccessedAt = time.Now()
	return sess, nil
}

// GetOrCreate returns the session stored under id, dealing one if needed
func (m *Manager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if sess, err := m.Get(id); err == nil {
		return sess, nil
	}

	sess, err := m.Create(id, config)
	if errors.Is(err, ErrSessionAlreadyExists) {
		// Another caller created it between Get and Create
		return m.Get(id)
	}
	return sess, err
}

// List returns the live sessions in no particular order
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		list = append(list, sess)
	}
	return list
}

// Delete drops a session and its table
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[key(id)]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, key(id))
	return nil
}

// CleanupExpiredSessions drops every session idle for longer than maxAge and
// returns how many went.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for k, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, k)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// newID draws 4 hex characters until one is free. Callers hold m.mu.
func (m *Manager) newID() string {
	buf := make([]byte, idBytes)
	for {
		rand.Read(buf)
		id := hex.EncodeToString(buf)
		if _, taken := m.sessions[id]; !taken {
			return id
		}
	}
}
