// Package store provides the attendee collection adapters. Attendee rows
// are write-once: created at registration, never mutated, never deleted
// while the event runs.
package store

import (
	"context"
	"sort"
	"sync"

	"gatepass/internal/attendee/models"
	"gatepass/pkg/platform/sentinel"
)

// InMemoryStore keeps attendees in process memory. It is the reference
// adapter: tests and single-box deployments run on it, and its behavior
// defines what the postgres and sheets adapters must match.
type InMemoryStore struct {
	mu      sync.RWMutex
	byToken map[string]models.Attendee
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byToken: make(map[string]models.Attendee)}
}

// Create inserts a new attendee. The token acts as the natural key; a
// colliding token returns sentinel.ErrConflict so the registration service
// can regenerate and retry.
func (s *InMemoryStore) Create(_ context.Context, a models.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byToken[a.Token]; exists {
		return sentinel.ErrConflict
	}
	s.byToken[a.Token] = a
	return nil
}

func (s *InMemoryStore) FindByToken(_ context.Context, token string) (models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.byToken[token]; ok {
		return a, nil
	}
	return models.Attendee{}, sentinel.ErrNotFound
}

// List returns every attendee ordered by registration time for reporting.
func (s *InMemoryStore) List(_ context.Context) ([]models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Attendee, 0, len(s.byToken))
	for _, a := range s.byToken {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out, nil
}
