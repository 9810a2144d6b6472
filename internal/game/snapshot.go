package game

import (
	"errors"
	"fmt"
)

// ErrInvalidSnapshot is returned when a snapshot cannot describe a real round.
var ErrInvalidSnapshot = errors.New("invalid game snapshot")

// Snapshot is the serialisable form of a GameState.
type Snapshot struct {
	Phase  Phase  `json:"phase"`
	Deck   []Card `json:"deck"`
	Player []Card `json:"player"`
	Dealer []Card `json:"dealer"`
}

// TakeSnapshot captures state so it can be stored and restored later. state
// must not be nil.
func TakeSnapshot(state GameState) Snapshot {
	ctx := state.Context()
	return Snapshot{
		Phase:  state.Phase(),
		Deck:   ctx.deck.Cards(),
		Player: ctx.player.Cards(),
		Dealer: ctx.dealer.Cards(),
	}
}

// Restore rebuilds the GameState a snapshot was taken from. Unknown phases,
// unknown cards, cards appearing twice and hands no round could hold in that
// phase are rejected.
func Restore(s Snapshot) (GameState, error) {
	seen := make(map[Card]struct{}, len(s.Deck)+len(s.Player)+len(s.Dealer))
	for _, cards := range [][]Card{s.Deck, s.Player, s.Dealer} {
		for _, card := range cards {
			if !card.Valid() {
				return nil, fmt.Errorf("%w: unknown card %q/%q", ErrInvalidSnapshot, card.Rank, card.Suit)
			}
			if _, dup := seen[card]; dup {
				return nil, fmt.Errorf("%w: %s appears twice", ErrInvalidSnapshot, card)
			}
			seen[card] = struct{}{}
		}
	}

	if s.Phase == PhaseReady {
		if len(s.Player) > 0 || len(s.Dealer) > 0 {
			return nil, fmt.Errorf("%w: %s with cards in hand", ErrInvalidSnapshot, s.Phase)
		}
	} else {
		if len(s.Player) < 2 {
			return nil, fmt.Errorf("%w: %s with %d player cards", ErrInvalidSnapshot, s.Phase, len(s.Player))
		}
		if len(s.Dealer) < 2 {
			return nil, fmt.Errorf("%w: %s with %d dealer cards", ErrInvalidSnapshot, s.Phase, len(s.Dealer))
		}
	}

	ctx := Context{
		deck:   NewDeck(s.Deck...),
		player: NewHand(s.Player...),
		dealer: NewDealerHand(s.Dealer...),
	}
	state, err := NewState(s.Phase, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return state, nil
}
