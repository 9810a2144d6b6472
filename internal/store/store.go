package store

import (
	"errors"
	"time"

	"github.com/calvinwijaya/blackjack-be/internal/game"
)

var (
	// ErrSessionNotFound is returned for an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNilState is returned when a session is created without a game state.
	ErrNilState = errors.New("session state is nil")
)

// Session is one player's seat at the engine: a single current GameState
// that all transitions for the player are applied to.
type Session struct {
	ID    string
	State game.GameState
	// LastActions are the actions produced by the most recent transition.
	LastActions []game.Action
	// Rounds counts rounds dealt in this session.
	Rounds    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store defines the interface for session storage
type Store interface {
	// Create stores a new session holding state, which must not be nil
	Create(state game.GameState) (*Session, error)

	// Get retrieves a session by ID
	Get(id string) (*Session, error)

	// Update applies fn to the session and saves the result. Calls for the
	// same session are serialised; if fn fails nothing is saved.
	Update(id string, fn func(s *Session) error) (*Session, error)

	// Delete removes a session from the store. An Update in progress for
	// the same session either completes first or fails with ErrSessionNotFound.
	Delete(id string) error

	// List returns all sessions in the store
	List() ([]*Session, error)

	// Sweep removes sessions idle for longer than maxIdle and reports how many
	Sweep(maxIdle time.Duration) (int, error)
}
