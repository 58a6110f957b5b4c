package memory

import (
	"context"
	"sync"

	"github.com/hongminglow/labubu-portal/internal/storage"
)

var _ storage.KV = (*Store)(nil)

// Store keeps entries in process memory. Entries do not survive a restart,
// so it is meant for local development and tests.
type Store struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

func New() *Store {
	return &Store{entries: make(map[string]map[string]string)}
}

func (s *Store) Get(_ context.Context, namespace, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[namespace][key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.entries[namespace]
	if !ok {
		ns = make(map[string]string)
		s.entries[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, namespace string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.entries[namespace]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(ns, key)
	}
	if len(ns) == 0 {
		delete(s.entries, namespace)
	}
	return nil
}
