// Package memory provides an in-process implementation of the transcript
// store port. It is the default when no Redis address is configured.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/canopy/pkg/domain"
)

// Store implements ports.TranscriptStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]*domain.Record
	mu   sync.RWMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]*domain.Record),
	}
}

// Append adds a record to the session's transcript. The record is copied
// so callers cannot mutate stored history through the pointer.
func (s *Store) Append(ctx context.Context, sessionID string, rec *domain.Record) error {
	copied := *rec
	if rec.RetrievedPassages != nil {
		copied.RetrievedPassages = append([]string(nil), rec.RetrievedPassages...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = append(s.data[sessionID], &copied)
	return nil
}

// History returns the session's records in append order.
func (s *Store) History(ctx context.Context, sessionID string) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// Copy on read so callers can't reorder the stored transcript.
	out := make([]*domain.Record, len(records))
	for i, rec := range records {
		copied := *rec
		out[i] = &copied
	}
	return out, nil
}

// Delete removes the session's transcript.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// Sessions returns the known session IDs.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
