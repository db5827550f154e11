package verification

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Entries are lost on restart and are not shared
// between instances; use RedisStore when running more than one.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

// Save replaces any pending entry for email.
func (s *MemoryStore) Save(_ context.Context, email string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[email] = entry
	return nil
}

// Get returns the pending entry for email, expired or not.
func (s *MemoryStore) Get(_ context.Context, email string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[email]
	return entry, ok, nil
}

// Delete drops the entry for email; a missing entry is not an error.
func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close drops every entry.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]Entry)
	return nil
}
