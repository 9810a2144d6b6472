package api

import (
	"time"

	"github.com/calvinwijaya/blackjack-be/internal/game"
	"github.com/calvinwijaya/blackjack-be/internal/store"
)

// HandView is a hand as the player is allowed to see it. Score is omitted
// while any card of the hand is hidden.
type HandView struct {
	Cards       []game.Card `json:"cards"`
	Score       *int        `json:"score,omitempty"`
	Soft        bool        `json:"soft"`
	HiddenCards int         `json:"hiddenCards,omitempty"`
}

// SessionView is the player's view of a session.
type SessionView struct {
	ID            string     `json:"id"`
	Phase         game.Phase `json:"phase"`
	Rounds        int        `json:"rounds"`
	DeckRemaining int        `json:"deckRemaining"`
	Player        HandView   `json:"player"`
	Dealer        HandView   `json:"dealer"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ActionView is the wire form of a game.Action.
type ActionView struct {
	Type   game.ActionType `json:"type"`
	Card   *game.Card      `json:"card,omitempty"`
	Cards  []game.Card     `json:"cards,omitempty"`
	Player *HandView       `json:"player,omitempty"`
	Dealer *HandView       `json:"dealer,omitempty"`
}

func handView(hand game.Hand) HandView {
	cards := hand.Cards()
	if cards == nil {
		cards = []game.Card{}
	}
	score := hand.Score()
	return HandView{
		Cards: cards,
		Score: &score,
		Soft:  hand.IsSoft(),
	}
}

// dealerView hides the hole card unless revealed is set.
func dealerView(dealer game.DealerHand, revealed bool) HandView {
	if revealed || dealer.Len() < 2 {
		return handView(dealer.Hand())
	}

	cards := dealer.Cards()[1:]
	return HandView{
		Cards:       cards,
		HiddenCards: 1,
	}
}

func newSessionView(sess *store.Session) SessionView {
	ctx := sess.State.Context()
	return SessionView{
		ID:            sess.ID,
		Phase:         sess.State.Phase(),
		Rounds:        sess.Rounds,
		DeckRemaining: ctx.Deck().Len(),
		Player:        handView(ctx.PlayerHand()),
		Dealer:        dealerView(ctx.DealerHand(), sess.State.Phase() != game.PhaseWaitingForPlayer),
		CreatedAt:     sess.CreatedAt,
		UpdatedAt:     sess.UpdatedAt,
	}
}

// encodeActions converts actions for the wire. The dealer's hole card inside
// a NewHand is shown only when the same list also reveals it.
func encodeActions(actions []game.Action) []ActionView {
	revealed := false
	for _, a := range actions {
		if _, ok := a.(game.ShowDealerHoleCardAction); ok {
			revealed = true
			break
		}
	}

	views := make([]ActionView, 0, len(actions))
	for _, a := range actions {
		view := ActionView{Type: a.Type()}
		switch a := a.(type) {
		case game.NewHandAction:
			player := handView(a.Player)
			dealer := dealerView(a.Dealer, revealed)
			view.Player, view.Dealer = &player, &dealer
		case game.NewPlayerCardAction:
			card := a.Card
			view.Card = &card
		case game.NewDealerCardsAction:
			view.Cards = a.Cards
		case game.ShowDealerHoleCardAction:
			card := a.Card
			view.Card = &card
		}
		views = append(views, view)
	}
	return views
}
