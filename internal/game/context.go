package game

import "fmt"

// Context is the value threaded through a round: the deck still to be dealt
// and both hands. Every operation returns a new Context.
type Context struct {
	deck   Deck
	player Hand
	dealer DealerHand
}

// NewContext starts a round from the exact deck given, with empty hands.
func NewContext(deck Deck) Context {
	return Context{deck: deck}
}

// FreshContext starts a round from a newly shuffled standard deck.
func FreshContext() Context {
	return NewContext(StandardDeck().Shuffle())
}

func (c Context) Deck() Deck             { return c.deck }
func (c Context) PlayerHand() Hand       { return c.player }
func (c Context) DealerHand() DealerHand { return c.dealer }
func (c Context) PlayerScore() int       { return c.player.Score() }
func (c Context) DealerScore() int       { return c.dealer.Score() }

// DealInitialHands deals four cards alternately: player, dealer (hole card),
// player, dealer (upcard).
func (c Context) DealInitialHands() (Context, error) {
	deck := c.deck
	dealt := make([]Card, 4)
	for i := range dealt {
		var err error
		deck, dealt[i], err = deck.Deal()
		if err != nil {
			return c, fmt.Errorf("deal initial hands: %w", err)
		}
	}

	return Context{
		deck:   deck,
		player: NewHand(dealt[0], dealt[2]),
		dealer: NewDealerHand(dealt[1], dealt[3]),
	}, nil
}

// DealPlayerCard deals one card to the player.
func (c Context) DealPlayerCard() (Context, Card, error) {
	deck, card, err := c.deck.Deal()
	if err != nil {
		return c, Card{}, fmt.Errorf("deal player card: %w", err)
	}

	return Context{
		deck:   deck,
		player: c.player.Add(card),
		dealer: c.dealer,
	}, card, nil
}

// PlayDealerHand draws for the dealer until the dealer reaches 17 or more.
func (c Context) PlayDealerHand() (Context, error) {
	next := c
	for next.DealerScore() < DealerStandsOn {
		deck, card, err := next.deck.Deal()
		if err != nil {
			return c, fmt.Errorf("play dealer hand: %w", err)
		}
		next.deck = deck
		next.dealer = next.dealer.Add(card)
	}
	return next, nil
}

func (c Context) PlayerBlackjack() bool {
	return c.PlayerScore() == Blackjack
}

func (c Context) DealerBlackjack() bool {
	return c.DealerScore() == Blackjack
}

func (c Context) DoubleBlackjack() bool {
	return c.PlayerBlackjack() && c.DealerBlackjack()
}

func (c Context) PlayerBusts() bool {
	return c.PlayerScore() > Blackjack
}

func (c Context) DealerBusts() bool {
	return c.DealerScore() > Blackjack
}

// PlayerWins is true when the player outscores the dealer or the dealer busts.
func (c Context) PlayerWins() bool {
	return c.PlayerScore() > c.DealerScore() || c.DealerBusts()
}

// DealerWins is true when the dealer outscores the player without busting.
func (c Context) DealerWins() bool {
	return c.DealerScore() > c.PlayerScore() && !c.DealerBusts()
}

func (c Context) IsDraw() bool {
	return c.PlayerScore() == c.DealerScore()
}

// AllCards returns every card the context holds: deck, player hand, dealer hand.
func (c Context) AllCards() []Card {
	all := make([]Card, 0, c.deck.Len()+c.player.Len()+c.dealer.Len())
	all = append(all, c.deck.cards...)
	all = append(all, c.player.cards...)
	all = append(all, c.dealer.hand.cards...)
	return all
}
