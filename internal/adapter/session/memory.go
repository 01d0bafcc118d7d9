// Package session stores capture sessions with an inactivity TTL.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ntotao/baby-tracker/internal/capture"
)

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps sessions in process memory. Entries are dropped lazily
// on read and by a background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[capture.Key]entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a store with background sweeping every interval.
// Call Stop() on shutdown.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[capture.Key]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

// Stop terminates the background sweep.
func (s *MemoryStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// Get returns the session for key, or nil when absent or expired.
// Sessions are stored encoded so callers never share mutable state.
func (s *MemoryStore) Get(_ context.Context, key capture.Key) (*capture.Session, error) {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && !s.now().Before(e.expires) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var sess capture.Session
	if err := json.Unmarshal(e.data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Put stores the session for ttl.
func (s *MemoryStore) Put(_ context.Context, key capture.Key, sess *capture.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	s.entries[key] = entry{data: data, expires: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes the session for key.
func (s *MemoryStore) Delete(_ context.Context, key capture.Key) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}
