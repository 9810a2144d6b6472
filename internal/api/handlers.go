package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/calvinwijaya/blackjack-be/internal/db"
	"github.com/calvinwijaya/blackjack-be/internal/game"
	"github.com/calvinwijaya/blackjack-be/internal/store"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

const defaultHistoryLimit = 20

// Handlers contains all the API handlers
type Handlers struct {
	store    store.Store
	database *db.Database
	hub      *Hub
	logger   *log.Logger
	newDeck  func() game.Deck
}

// NewHandlers creates a new instance of Handlers. database and hub may be nil.
func NewHandlers(store store.Store, database *db.Database, hub *Hub, logger *log.Logger) *Handlers {
	return &Handlers{
		store:    store,
		database: database,
		hub:      hub,
		logger:   logger,
		newDeck: func() game.Deck {
			return game.StandardDeck().Shuffle()
		},
	}
}

// SetDeckSource replaces how the deck for each new round is built.
func (h *Handlers) SetDeckSource(newDeck func() game.Deck) {
	h.newDeck = newDeck
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Session endpoints
	r.HandleFunc("/api/sessions", h.CreateSession).Methods("POST")
	r.HandleFunc("/api/sessions", h.ListSessions).Methods("GET")
	r.HandleFunc("/api/sessions/{id}", h.GetSession).Methods("GET")
	r.HandleFunc("/api/sessions/{id}", h.DeleteSession).Methods("DELETE")

	// Round transitions
	r.HandleFunc("/api/sessions/{id}/deal", h.Deal).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/hit", h.Hit).Methods("POST")
	r.HandleFunc("/api/sessions/{id}/stand", h.Stand).Methods("POST")

	// Results
	r.HandleFunc("/api/sessions/{id}/history", h.History).Methods("GET")
	r.HandleFunc("/api/stats", h.Stats).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws", h.WebSocket)
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// failure maps an error from the store or the game to a response.
func (h *Handlers) failure(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		errorResponse(w, http.StatusNotFound, "Session not found")
	case errors.Is(err, game.ErrInvalidState):
		errorResponse(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(message, "error", err)
		errorResponse(w, http.StatusInternalServerError, message)
	}
}

// TransitionResponse is returned by deal, hit and stand, and pushed to the
// session's websocket subscribers.
type TransitionResponse struct {
	Session SessionView  `json:"session"`
	Actions []ActionView `json:"actions"`
}

// CreateSession starts a session in the ready state
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Create(game.NewWithDeck(h.newDeck()))
	if err != nil {
		h.failure(w, err, "Failed to create session")
		return
	}

	h.logger.Info("Session created", "session", sess.ID)
	response(w, http.StatusCreated, newSessionView(sess))
}

// ListSessions returns every session, most recently active first
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.List()
	if err != nil {
		h.failure(w, err, "Error retrieving sessions")
		return
	}

	views := make([]SessionView, 0, len(sessions))
	for _, sess := range sessions {
		views = append(views, newSessionView(sess))
	}
	response(w, http.StatusOK, views)
}

// GetSession returns the player's view of a session
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Get(mux.Vars(r)["id"])
	if err != nil {
		h.failure(w, err, "Error retrieving session")
		return
	}
	response(w, http.StatusOK, newSessionView(sess))
}

// DeleteSession removes a session and tells its subscribers it is gone
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.Delete(id); err != nil {
		h.failure(w, err, "Failed to delete session")
		return
	}

	if h.hub != nil {
		h.hub.BroadcastToSession(id, Message{Type: MessageDeleted})
	}
	h.logger.Info("Session deleted", "session", id)
	response(w, http.StatusOK, map[string]bool{"success": true})
}

// Deal starts a new round. A resolved round is discarded and replaced by one
// dealt from a fresh deck.
func (h *Handlers) Deal(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "deal", func(state game.GameState) (game.GameState, []game.Action, error) {
		if state.Phase().Terminal() {
			state = game.NewWithDeck(h.newDeck())
		}
		return game.Deal(state)
	})
}

// Hit deals the player another card
func (h *Handlers) Hit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "hit", game.Hit)
}

// Stand ends the player's turn and resolves the round
func (h *Handlers) Stand(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "stand", game.Stand)
}

type transitionFunc func(game.GameState) (game.GameState, []game.Action, error)

func (h *Handlers) transition(w http.ResponseWriter, r *http.Request, name string, fn transitionFunc) {
	id := mux.Vars(r)["id"]

	sess, err := h.store.Update(id, func(s *store.Session) error {
		next, actions, err := fn(s.State)
		if err != nil {
			return err
		}
		if name == "deal" {
			s.Rounds++
		}
		s.State, s.LastActions = next, actions
		return nil
	})
	if err != nil {
		h.failure(w, err, "Failed to "+name)
		return
	}

	phase := sess.State.Phase()
	h.logger.Debug("Transition applied", "session", id, "transition", name, "phase", phase)
	if phase.Terminal() {
		h.recordRound(sess)
	}

	resp := TransitionResponse{
		Session: newSessionView(sess),
		Actions: encodeActions(sess.LastActions),
	}
	if h.hub != nil {
		h.hub.BroadcastToSession(id, Message{Type: MessageActions, Data: resp})
	}
	response(w, http.StatusOK, resp)
}

// recordRound saves a resolved round. Failures are logged only; the round
// itself has already been applied.
func (h *Handlers) recordRound(sess *store.Session) {
	if h.database == nil {
		return
	}

	ctx := sess.State.Context()
	result := &db.RoundResult{
		SessionID:       sess.ID,
		Outcome:         sess.State.Phase(),
		PlayerScore:     ctx.PlayerScore(),
		DealerScore:     ctx.DealerScore(),
		PlayerCards:     ctx.PlayerHand().Cards(),
		DealerCards:     ctx.DealerHand().Cards(),
		PlayerBlackjack: ctx.PlayerBlackjack() && ctx.PlayerHand().Len() == 2,
	}
	if err := h.database.SaveRoundResult(result); err != nil {
		h.logger.Error("Failed to save round result", "session", sess.ID, "error", err)
		return
	}
	h.logger.Info("Round finished", "session", sess.ID, "outcome", result.Outcome,
		"player", result.PlayerScore, "dealer", result.DealerScore)
}

// History returns the most recent round results of a session
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Database not available")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	results, err := h.database.ListRoundResults(mux.Vars(r)["id"], limit)
	if err != nil {
		h.failure(w, err, "Error retrieving round history")
		return
	}
	response(w, http.StatusOK, results)
}

// Stats returns aggregate round statistics, for one session when sessionId
// is given
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusServiceUnavailable, "Database not available")
		return
	}

	stats, err := h.database.GetStats(r.URL.Query().Get("sessionId"))
	if err != nil {
		h.failure(w, err, "Error retrieving statistics")
		return
	}
	response(w, http.StatusOK, stats)
}

// WebSocket subscribes a connection to a session's actions. The first message
// is the current session view.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		errorResponse(w, http.StatusServiceUnavailable, "WebSocket not available")
		return
	}

	id := r.URL.Query().Get("sessionId")
	if id == "" {
		errorResponse(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	sess, err := h.store.Get(id)
	if err != nil {
		h.failure(w, err, "Error retrieving session")
		return
	}

	h.hub.ServeSession(w, r, id, Message{Type: MessageWelcome, Data: newSessionView(sess)})
}
