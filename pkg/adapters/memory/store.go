// Package memory provides an in-memory ports.ContextStore, the default for
// tests and single-process hosts.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/witgo/pkg/domain"
)

// Store implements ports.ContextStore in memory. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]domain.Context
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]domain.Context)}
}

// Save persists a copy of the context, isolating the store from later caller
// mutations.
func (s *Store) Save(ctx context.Context, sessionID string, c domain.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = c.Clone()
	return nil
}

// Load returns a copy of the persisted context.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return c.Clone(), nil
}

// Delete removes the session's context.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored session IDs in deterministic order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
