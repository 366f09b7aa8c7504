package session

import (
	"context"
	"sync"
)

// Session is the transient dialog state of one user. It holds form data until onboarding
// completes and the target date of a pending numeric input.
type Session struct {
	State      string  `json:"state"`
	Weight     float64 `json:"weight,omitempty"`
	Height     int     `json:"height,omitempty"`
	Gender     string  `json:"gender,omitempty"`
	BodyFat    float64 `json:"bodyfat,omitempty"`
	TargetDate string  `json:"target_date,omitempty"`
}

// Store keeps sessions between updates. Get returns an empty session for unknown users.
type Store interface {
	Get(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, userID int64, s *Session) error
	Delete(ctx context.Context, userID int64) error
}

type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]Session)}
}

func (m *MemoryStore) Get(ctx context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[userID]
	return &s, nil
}

func (m *MemoryStore) Save(ctx context.Context, userID int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = *s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}
