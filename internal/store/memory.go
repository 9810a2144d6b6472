package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/calvinwijaya/blackjack-be/internal/game"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of session storage
type MemoryStore struct {
	sessions map[string]*Session
	clock    quartz.Clock
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(clock quartz.Clock) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		clock:    clock,
	}
}

func (s *MemoryStore) Create(state game.GameState) (*Session, error) {
	if state == nil {
		return nil, ErrNilState
	}
	now := s.clock.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess

	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}

	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Update(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}

	next := *sess
	if err := fn(&next); err != nil {
		return nil, err
	}
	if next.State == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrNilState)
	}
	next.ID = sess.ID
	next.UpdatedAt = s.clock.Now()
	s.sessions[id] = &next

	copied := next
	return &copied, nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// List returns sessions most recently updated first.
func (s *MemoryStore) List() ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		copied := *sess
		sessions = append(sessions, &copied)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (s *MemoryStore) Sweep(maxIdle time.Duration) (int, error) {
	cutoff := s.clock.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
