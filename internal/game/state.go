package game

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a transition is not defined for the
// current state, such as hitting before the cards are dealt.
var ErrInvalidState = errors.New("invalid state for this transition")

type Phase string

const (
	PhaseReady            Phase = "ready"            // Cards not dealt yet
	PhaseWaitingForPlayer Phase = "waitingForPlayer" // Player to hit or stand
	PhaseDealerWins       Phase = "dealerWins"
	PhasePlayerWins       Phase = "playerWins"
	PhaseDraw             Phase = "draw"
)

// Terminal reports whether the round is resolved.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseDealerWins, PhasePlayerWins, PhaseDraw:
		return true
	}
	return false
}

// GameState is one of Ready, WaitingForPlayer, DealerWins, PlayerWins or Draw.
// Each carries the Context of the round.
type GameState interface {
	Phase() Phase
	Context() Context
	gameState()
}

type (
	Ready            struct{ ctx Context }
	WaitingForPlayer struct{ ctx Context }
	DealerWins       struct{ ctx Context }
	PlayerWins       struct{ ctx Context }
	Draw             struct{ ctx Context }
)

func (Ready) Phase() Phase            { return PhaseReady }
func (WaitingForPlayer) Phase() Phase { return PhaseWaitingForPlayer }
func (DealerWins) Phase() Phase       { return PhaseDealerWins }
func (PlayerWins) Phase() Phase       { return PhasePlayerWins }
func (Draw) Phase() Phase             { return PhaseDraw }

func (s Ready) Context() Context            { return s.ctx }
func (s WaitingForPlayer) Context() Context { return s.ctx }
func (s DealerWins) Context() Context       { return s.ctx }
func (s PlayerWins) Context() Context       { return s.ctx }
func (s Draw) Context() Context             { return s.ctx }

func (Ready) gameState()            {}
func (WaitingForPlayer) gameState() {}
func (DealerWins) gameState()       {}
func (PlayerWins) gameState()       {}
func (Draw) gameState()             {}

// New returns a Ready state holding a freshly shuffled deck.
func New() GameState {
	return Ready{ctx: FreshContext()}
}

// NewWithDeck returns a Ready state that will deal from deck as given.
func NewWithDeck(deck Deck) GameState {
	return Ready{ctx: NewContext(deck)}
}

// NewState wraps ctx in the variant named by phase.
func NewState(phase Phase, ctx Context) (GameState, error) {
	switch phase {
	case PhaseReady:
		return Ready{ctx: ctx}, nil
	case PhaseWaitingForPlayer:
		return WaitingForPlayer{ctx: ctx}, nil
	case PhaseDealerWins:
		return DealerWins{ctx: ctx}, nil
	case PhasePlayerWins:
		return PlayerWins{ctx: ctx}, nil
	case PhaseDraw:
		return Draw{ctx: ctx}, nil
	default:
		return nil, fmt.Errorf("unknown phase %q", phase)
	}
}

// Deal starts a round. From a resolved state it discards the old round and
// deals from a newly shuffled deck.
func Deal(state GameState) (GameState, []Action, error) {
	var ctx Context
	switch s := state.(type) {
	case Ready:
		ctx = s.ctx
	case DealerWins, PlayerWins, Draw:
		ctx = FreshContext()
	default:
		return state, nil, invalid("deal", state)
	}

	next, actions, err := dealInitial(ctx)
	if err != nil {
		return state, nil, err
	}
	return next, actions, nil
}

func dealInitial(ctx Context) (GameState, []Action, error) {
	next, err := ctx.DealInitialHands()
	if err != nil {
		return nil, nil, err
	}

	var (
		resolved GameState
		outcome  Action
	)
	switch {
	case next.DoubleBlackjack():
		resolved, outcome = Draw{ctx: next}, DrawAction{}
	case next.DealerBlackjack():
		resolved, outcome = DealerWins{ctx: next}, DealerWinsAction{}
	case next.PlayerBlackjack():
		resolved, outcome = PlayerWins{ctx: next}, PlayerWinsAction{}
	default:
		return WaitingForPlayer{ctx: next}, []Action{newHandAction(next)}, nil
	}

	hole, _ := next.dealer.HoleCard()
	return resolved, []Action{
		outcome,
		ShowDealerHoleCardAction{Card: hole},
		newHandAction(next),
	}, nil
}

// Hit deals the player one more card. Reaching 21 ends the player's turn as if
// they stood; going over ends the round for the dealer.
func Hit(state GameState) (GameState, []Action, error) {
	s, ok := state.(WaitingForPlayer)
	if !ok {
		return state, nil, invalid("hit", state)
	}

	next, card, err := s.ctx.DealPlayerCard()
	if err != nil {
		return state, nil, err
	}
	dealt := NewPlayerCardAction{Card: card}

	switch {
	case next.PlayerBlackjack():
		final, actions, err := Stand(WaitingForPlayer{ctx: next})
		if err != nil {
			return state, nil, err
		}
		return final, append([]Action{dealt}, actions...), nil
	case next.PlayerBusts():
		hole, _ := next.dealer.HoleCard()
		return DealerWins{ctx: next}, []Action{
			dealt,
			DealerWinsAction{},
			ShowDealerHoleCardAction{Card: hole},
		}, nil
	default:
		return WaitingForPlayer{ctx: next}, []Action{dealt}, nil
	}
}

// Stand ends the player's turn, plays out the dealer's hand and resolves the
// round.
func Stand(state GameState) (GameState, []Action, error) {
	s, ok := state.(WaitingForPlayer)
	if !ok {
		return state, nil, invalid("stand", state)
	}

	next, err := s.ctx.PlayDealerHand()
	if err != nil {
		return state, nil, err
	}

	hole, _ := next.dealer.HoleCard()
	reveal := []Action{ShowDealerHoleCardAction{Card: hole}}
	if drawn := next.dealer.hand.cards[min(2, next.dealer.Len()):]; len(drawn) > 0 {
		reveal = append(reveal, newDealerCardsAction(drawn))
	}

	switch {
	case next.DealerWins():
		return DealerWins{ctx: next}, append([]Action{DealerWinsAction{}}, reveal...), nil
	case next.PlayerWins():
		return PlayerWins{ctx: next}, append([]Action{PlayerWinsAction{}}, reveal...), nil
	case next.IsDraw():
		return Draw{ctx: next}, append([]Action{DrawAction{}}, reveal...), nil
	default:
		return WaitingForPlayer{ctx: next}, nil, nil
	}
}

func invalid(transition string, state GameState) error {
	if state == nil {
		return fmt.Errorf("%s from nil state: %w", transition, ErrInvalidState)
	}
	return fmt.Errorf("%s from %s: %w", transition, state.Phase(), ErrInvalidState)
}
