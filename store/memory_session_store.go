package store

import (
	"context"
	"sync"

	"rental_frontend/domain"
)

// MemorySessionStore forgets the session when the process exits.
type MemorySessionStore struct {
	mu      sync.Mutex
	session domain.PersistedSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (store *MemorySessionStore) Load(ctx context.Context) (domain.PersistedSession, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.session, nil
}

func (store *MemorySessionStore) Save(ctx context.Context, session domain.PersistedSession) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.session = session
	return nil
}

func (store *MemorySessionStore) Clear(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.session = domain.PersistedSession{}
	return nil
}
