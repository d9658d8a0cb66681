package userstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tolgauslu/authgate"
)

// Memory is a mutex-guarded in-memory user store. Intended for tests and
// local development; records do not survive the process.
type Memory struct {
	mu      sync.RWMutex
	byID    map[string]authgate.UserRecord
	byEmail map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]authgate.UserRecord),
		byEmail: make(map[string]string),
	}
}

// FindByEmail implements [authgate.UserStore]. Emails match exactly as
// stored.
func (m *Memory) FindByEmail(_ context.Context, email string) (authgate.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return m.byID[id], nil
}

// FindByID implements [authgate.UserStore].
func (m *Memory) FindByID(_ context.Context, id string) (authgate.UserRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[id]
	if !ok {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return user, nil
}

// Create implements [authgate.UserStore]. New records get a generated UUID.
func (m *Memory) Create(_ context.Context, email, passwordHash string) (authgate.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return authgate.UserRecord{}, authgate.ErrEmailExists
	}

	user := authgate.UserRecord{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	m.byID[user.ID] = user
	m.byEmail[email] = user.ID
	return user, nil
}

// Delete removes a user record. Used by tests to simulate an account that
// disappears between login and refresh.
func (m *Memory) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)
	delete(m.byEmail, user.Email)
}
