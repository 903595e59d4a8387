// Package store provides the check-in ledger adapters. The ledger is
// append-only: rows are never mutated or deleted, so every verification
// attempt stays traceable.
package store

import (
	"context"
	"sync"

	"gatepass/internal/checkin/models"
)

type grantKey struct {
	token string
	venue string
}

// InMemoryStore keeps the ledger in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	events  []models.Event
	granted map[grantKey]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{granted: make(map[grantKey]struct{})}
}

// Append adds one event to the ledger. Append never rejects duplicates:
// deciding between GRANTED and DUPLICATE is the engine's job, the ledger
// just records what happened.
func (s *InMemoryStore) Append(_ context.Context, e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	if e.Outcome == models.OutcomeGranted {
		s.granted[grantKey{token: e.Token, venue: e.Venue}] = struct{}{}
	}
	return nil
}

// ExistsGranted reports whether a GRANTED event was already recorded for
// (token, venue).
func (s *InMemoryStore) ExistsGranted(_ context.Context, token, venue string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.granted[grantKey{token: token, venue: venue}]
	return ok, nil
}

// ListByToken returns every ledger row for a credential in append order.
func (s *InMemoryStore) ListByToken(_ context.Context, token string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Event
	for _, e := range s.events {
		if e.Token == token {
			out = append(out, e)
		}
	}
	return out, nil
}

// List returns the whole ledger in append order.
func (s *InMemoryStore) List(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event{}, s.events...), nil
}
