package session

import (
	"context"
	"errors"
	"sync"

	"github.com/homestylefoods/storefront-backend/internal/cart"
)

// ErrNotFound signals a missing or expired session record.
var ErrNotFound = errors.New("session not found")

// Flash is a one-shot message rendered on the next page load.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the per-visitor state kept server side. The cookie only
// carries the signed session ID.
type Session struct {
	UserEmail string    `json:"user_email,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	Cart      cart.Cart `json:"cart,omitempty"`
	Flashes   []Flash   `json:"flashes,omitempty"`
}

// LoggedIn reports whether a user is bound to the session.
func (s *Session) LoggedIn() bool {
	return s.UserEmail != ""
}

// AddFlash queues a one-shot message.
func (s *Session) AddFlash(level, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// ConsumeFlashes returns the queued messages and clears the queue.
func (s *Session) ConsumeFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// Store persists session records keyed by session ID.
type Store interface {
	Get(ctx context.Context, sessionID string) (Session, error)
	Set(ctx context.Context, sessionID string, sess Session) error
	Del(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory. Used in development and
// tests when Redis is not configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]Session{}}
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemoryStore) Set(_ context.Context, sessionID string, sess Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[sessionID] = sess
	return nil
}

func (m *MemoryStore) Del(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}
