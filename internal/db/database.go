package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calvinwijaya/blackjack-be/internal/game"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type Database struct {
	db     *sql.DB
	driver string
}

// SessionRecord is a persisted session: its game snapshot as JSON plus
// bookkeeping columns.
type SessionRecord struct {
	ID        string
	Phase     game.Phase
	State     []byte
	Rounds    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoundResult records how a finished round ended.
type RoundResult struct {
	ID              string      `json:"id"`
	SessionID       string      `json:"sessionId"`
	Outcome         game.Phase  `json:"outcome"`
	PlayerScore     int         `json:"playerScore"`
	DealerScore     int         `json:"dealerScore"`
	PlayerCards     []game.Card `json:"playerCards"`
	DealerCards     []game.Card `json:"dealerCards"`
	PlayerBlackjack bool        `json:"playerBlackjack"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type Stats struct {
	RoundsPlayed     int `json:"roundsPlayed"`
	PlayerWins       int `json:"playerWins"`
	DealerWins       int `json:"dealerWins"`
	Draws            int `json:"draws"`
	PlayerBlackjacks int `json:"playerBlackjacks"`
}

// Open connects to the database and creates the tables if needed.
func Open(driver, dsn string) (*Database, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	// Set connection parameters
	if driver == DriverSQLite {
		// SQLite allows one writer; a single connection also keeps
		// :memory: databases from splitting per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := initTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Database{db: db, driver: driver}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			phase TEXT NOT NULL,
			state TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating sessions table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS round_results (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			player_score INTEGER NOT NULL,
			dealer_score INTEGER NOT NULL,
			player_cards TEXT NOT NULL,
			dealer_cards TEXT NOT NULL,
			player_blackjack BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating round_results table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) Driver() string {
	return d.driver
}

// SaveSession inserts or replaces a session row.
func (d *Database) SaveSession(rec SessionRecord) error {
	_, err := d.db.Exec(`
		INSERT INTO sessions (id, phase, state, rounds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET phase = excluded.phase, state = excluded.state, rounds = excluded.rounds, updated_at = excluded.updated_at
	`, rec.ID, string(rec.Phase), string(rec.State), rec.Rounds, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	return nil
}

// UpdateSession overwrites an existing session row. It returns ErrNotFound
// when the session has been deleted.
func (d *Database) UpdateSession(rec SessionRecord) error {
	res, err := d.db.Exec(`
		UPDATE sessions SET phase = $1, state = $2, rounds = $3, updated_at = $4 WHERE id = $5
	`, string(rec.Phase), string(rec.State), rec.Rounds, rec.UpdatedAt.UTC(), rec.ID)
	if err != nil {
		return fmt.Errorf("update session %s: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: %w", rec.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", rec.ID, ErrNotFound)
	}
	return nil
}

// GetSession retrieves a session by ID
func (d *Database) GetSession(id string) (*SessionRecord, error) {
	var (
		rec   SessionRecord
		phase string
		state string
	)
	err := d.db.QueryRow(`
		SELECT id, phase, state, rounds, created_at, updated_at FROM sessions WHERE id = $1
	`, id).Scan(&rec.ID, &phase, &state, &rec.Rounds, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	rec.Phase = game.Phase(phase)
	rec.State = []byte(state)
	return &rec, nil
}

// ListSessions returns all sessions, most recently updated first.
func (d *Database) ListSessions() ([]SessionRecord, error) {
	rows, err := d.db.Query(`
		SELECT id, phase, state, rounds, created_at, updated_at FROM sessions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			rec   SessionRecord
			phase string
			state string
		)
		if err := rows.Scan(&rec.ID, &phase, &state, &rec.Rounds, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		rec.Phase = game.Phase(phase)
		rec.State = []byte(state)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteSession removes a session. Round results are kept.
func (d *Database) DeleteSession(id string) error {
	res, err := d.db.Exec("DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSessionsBefore removes sessions not updated since cutoff and
// returns how many were removed.
func (d *Database) DeleteSessionsBefore(cutoff time.Time) (int, error) {
	res, err := d.db.Exec("DELETE FROM sessions WHERE updated_at < $1", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}
	return int(n), nil
}

// SaveRoundResult stores the result of a finished round. ID and CreatedAt
// are filled in when empty.
func (d *Database) SaveRoundResult(r *RoundResult) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	playerCards, err := json.Marshal(r.PlayerCards)
	if err != nil {
		return err
	}
	dealerCards, err := json.Marshal(r.DealerCards)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO round_results (id, session_id, outcome, player_score, dealer_score, player_cards, dealer_cards, player_blackjack, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.ID, r.SessionID, string(r.Outcome), r.PlayerScore, r.DealerScore,
		string(playerCards), string(dealerCards), r.PlayerBlackjack, r.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save round result: %w", err)
	}
	return nil
}

// ListRoundResults returns the most recent results for a session, newest first.
func (d *Database) ListRoundResults(sessionID string, limit int) ([]RoundResult, error) {
	rows, err := d.db.Query(`
		SELECT id, session_id, outcome, player_score, dealer_score, player_cards, dealer_cards, player_blackjack, created_at
		FROM round_results WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list round results: %w", err)
	}
	defer rows.Close()

	results := []RoundResult{}
	for rows.Next() {
		var (
			r                        RoundResult
			outcome                  string
			playerCards, dealerCards string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &outcome, &r.PlayerScore, &r.DealerScore,
			&playerCards, &dealerCards, &r.PlayerBlackjack, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list round results: %w", err)
		}
		r.Outcome = game.Phase(outcome)
		if err := json.Unmarshal([]byte(playerCards), &r.PlayerCards); err != nil {
			return nil, fmt.Errorf("decode player cards: %w", err)
		}
		if err := json.Unmarshal([]byte(dealerCards), &r.DealerCards); err != nil {
			return nil, fmt.Errorf("decode dealer cards: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetStats aggregates round results, for one session or, when sessionID is
// empty, for every session.
func (d *Database) GetStats(sessionID string) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'playerWins' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'dealerWins' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'draw' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN player_blackjack THEN 1 ELSE 0 END), 0)
		FROM round_results`
	var args []any
	if sessionID != "" {
		query += " WHERE session_id = $1"
		args = append(args, sessionID)
	}

	var s Stats
	err := d.db.QueryRow(query, args...).Scan(&s.RoundsPlayed, &s.PlayerWins, &s.DealerWins, &s.Draws, &s.PlayerBlackjacks)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &s, nil
}
