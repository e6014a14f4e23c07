package cache

import (
	"fmt"
	"sync"

	"xscan/internal/model"
)

// Store is the persistence collaborator behind a ScanCache. Load hydrates the
// in-memory cache at startup, Write flushes a full snapshot. The on-disk
// format is the store's concern.
type Store interface {
	Load() (map[string]model.Artifact, error)
	Write(artifacts map[string]model.Artifact) error
	Close() error
}

// MemoryStore implements Store without durability. Used in tests and when no
// cache path is configured.
type MemoryStore struct {
	mu        sync.Mutex
	artifacts map[string]model.Artifact
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{artifacts: make(map[string]model.Artifact)}
}

func (m *MemoryStore) Load() (map[string]model.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]model.Artifact, len(m.artifacts))
	for k, v := range m.artifacts {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Write(artifacts map[string]model.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts = make(map[string]model.Artifact, len(artifacts))
	for k, v := range artifacts {
		m.artifacts[k] = v
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// NewStore creates a store for the given backend. An empty path selects the
// in-memory backend.
func NewStore(backend, path string) (Store, error) {
	switch backend {
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("sqlite store requires a cache path")
		}
		return NewSQLiteStore(path)
	case "memory", "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", backend)
	}
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
