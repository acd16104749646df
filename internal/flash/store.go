// Package flash keeps one-shot notices alive across a POST-redirect-GET.
package flash

import (
	"context"
	"sync"
	"time"
)

// Kind classifies a notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Flash is a notice shown once on the next rendered page.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Success builds a success notice.
func Success(message string) Flash { return Flash{Kind: KindSuccess, Message: message} }

// Error builds an error notice.
func Error(message string) Flash { return Flash{Kind: KindError, Message: message} }

// Store holds pending notices per browser.
type Store interface {
	Push(ctx context.Context, key string, f Flash) error
	Pop(ctx context.Context, key string) ([]Flash, error)
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	flashes   []Flash
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Entries lapse after ttl.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Push(_ context.Context, key string, f Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	entry := s.entries[key]
	entry.flashes = append(entry.flashes, f)
	entry.expiresAt = s.now().Add(s.ttl)
	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, key string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	delete(s.entries, key)
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, nil
	}
	return entry.flashes, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// sweep drops lapsed entries; callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
}
