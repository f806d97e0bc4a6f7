package session

import (
	"context"
	"sync"
	"time"

	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// MemoryStore keeps sessions in a process-local map. Entries expire ttl after
// their last write so abandoned sessions cannot accumulate forever.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	session   *models.Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go store.sweepLoop()

	return store
}

func (s *MemoryStore) Create(_ context.Context, id, jobDescription string, role models.InterviewerRole) (*models.Session, error) {
	sess := &models.Session{
		ID:             id,
		JobDescription: jobDescription,
		Role:           role,
		Log:            []models.Turn{},
		CreatedAt:      time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &memoryEntry{session: sess, expiresAt: time.Now().Add(s.ttl)}
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[id]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return entry.session, nil
}

func (s *MemoryStore) Save(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[session.ID]
	if !exists {
		return ErrNotFound
	}
	entry.session = session
	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Size returns the number of live entries, expired ones included until the
// next sweep.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background sweep goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

// sweepLoop runs periodically to remove expired entries
func (s *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
