package localstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and dev mode.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]map[string]string),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Namespace(sessionID string) KV {
	return &memoryKV{store: m, sessionID: sessionID}
}

func (m *MemoryStore) DropSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

type memoryKV struct {
	store     *MemoryStore
	sessionID string
}

func (kv *memoryKV) Get(ctx context.Context, key string) (string, error) {
	kv.store.mu.RLock()
	defer kv.store.mu.RUnlock()
	values, ok := kv.store.sessions[kv.sessionID]
	if !ok {
		return "", ErrNoValue
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNoValue
	}
	return value, nil
}

func (kv *memoryKV) Set(ctx context.Context, key, value string) error {
	kv.store.mu.Lock()
	defer kv.store.mu.Unlock()
	values, ok := kv.store.sessions[kv.sessionID]
	if !ok {
		values = make(map[string]string)
		kv.store.sessions[kv.sessionID] = values
	}
	values[key] = value
	return nil
}

func (kv *memoryKV) Remove(ctx context.Context, key string) error {
	kv.store.mu.Lock()
	defer kv.store.mu.Unlock()
	if values, ok := kv.store.sessions[kv.sessionID]; ok {
		delete(values, key)
	}
	return nil
}
