package session

import (
	"context"
	"sync"
)

// Persisted entry names. Absence of any one of them is equivalent to
// "no session"; there is no cross-key atomicity guarantee and restore is
// written to tolerate partial writes.
const (
	KeyAuthToken       = "authToken"
	KeyRefreshToken    = "refreshToken"
	KeyIsAuthenticated = "isAuthenticated"
	KeyUser            = "user"
)

func sessionKeys() []string {
	return []string{KeyAuthToken, KeyRefreshToken, KeyIsAuthenticated, KeyUser}
}

// Keyring is the small key/value persistence the session store owns. No
// other component reads or writes these entries directly.
type Keyring interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKeyring is an in-process keyring used by tests and the smoke tool.
type MemoryKeyring struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryKeyring returns an empty in-memory keyring.
func NewMemoryKeyring() *MemoryKeyring {
	return &MemoryKeyring{entries: make(map[string]string)}
}

func (m *MemoryKeyring) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryKeyring) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryKeyring) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
