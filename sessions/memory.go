package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gotodo/models"
)

// Memory is an in-process session store for tests.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]models.Session)}
}

func (m *Memory) Create(_ context.Context, userID int64, ttl time.Duration) (models.Session, error) {
	now := time.Now()
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token] = session
	return session, nil
}

func (m *Memory) Get(_ context.Context, token string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return models.Session{}, ErrNoSession
	}
	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, token)
		return models.Session{}, ErrNoSession
	}
	return session, nil
}

func (m *Memory) Destroy(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
