package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/calvinwijaya/blackjack-be/internal/db"
	"github.com/calvinwijaya/blackjack-be/internal/game"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// DatabaseStore persists sessions as game snapshots. LastActions are not
// persisted; a session loaded from the database has none. Update, Delete and
// Sweep are serialised so a deleted session cannot be written back.
type DatabaseStore struct {
	db    *db.Database
	clock quartz.Clock
	mu    sync.Mutex
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.Database, clock quartz.Clock) *DatabaseStore {
	return &DatabaseStore{
		db:    database,
		clock: clock,
	}
}

func (s *DatabaseStore) Create(state game.GameState) (*Session, error) {
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
	rec, err := toRecord(sess)
	if err != nil {
		return nil, err
	}
	if err := s.db.SaveSession(rec); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *DatabaseStore) Get(id string) (*Session, error) {
	return s.load(id)
}

func (s *DatabaseStore) Update(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	sess.ID = id
	sess.UpdatedAt = s.clock.Now()
	rec, err := toRecord(sess)
	if err != nil {
		return nil, err
	}
	if err := s.db.UpdateSession(rec); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
		}
		return nil, err
	}
	return sess, nil
}

func (s *DatabaseStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.DeleteSession(id)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return err
}

func (s *DatabaseStore) List() ([]*Session, error) {
	records, err := s.db.ListSessions()
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(records))
	for _, rec := range records {
		sess, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

func (s *DatabaseStore) Sweep(maxIdle time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.DeleteSessionsBefore(s.clock.Now().Add(-maxIdle))
}

func (s *DatabaseStore) load(id string) (*Session, error) {
	rec, err := s.db.GetSession(id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(*rec)
}

func toRecord(sess *Session) (db.SessionRecord, error) {
	if sess.State == nil {
		return db.SessionRecord{}, fmt.Errorf("session %s: %w", sess.ID, ErrNilState)
	}
	state, err := json.Marshal(game.TakeSnapshot(sess.State))
	if err != nil {
		return db.SessionRecord{}, fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	return db.SessionRecord{
		ID:        sess.ID,
		Phase:     sess.State.Phase(),
		State:     state,
		Rounds:    sess.Rounds,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}, nil
}

func fromRecord(rec db.SessionRecord) (*Session, error) {
	var snap game.Snapshot
	if err := json.Unmarshal(rec.State, &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", rec.ID, err)
	}
	state, err := game.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", rec.ID, err)
	}
	return &Session{
		ID:        rec.ID,
		State:     state,
		Rounds:    rec.Rounds,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
