package game

import "slices"

const (
	// Blackjack is the best possible score; anything above busts.
	Blackjack = 21
	// DealerStandsOn is the score at which the dealer stops drawing, soft or hard.
	DealerStandsOn = 17
)

// Hand is an append-only sequence of cards in deal order.
type Hand struct {
	cards []Card
}

// NewHand returns a hand holding the given cards in order.
func NewHand(cards ...Card) Hand {
	return Hand{cards: slices.Clone(cards)}
}

// Add returns a new hand with the card appended; h is unchanged.
func (h Hand) Add(card Card) Hand {
	cards := make([]Card, len(h.cards), len(h.cards)+1)
	copy(cards, h.cards)
	return Hand{cards: append(cards, card)}
}

func (h Hand) Cards() []Card {
	return slices.Clone(h.cards)
}

func (h Hand) Len() int {
	return len(h.cards)
}

// Score calculates the score of a hand, accounting for aces
func (h Hand) Score() int {
	score, _ := h.score()
	return score
}

// IsSoft reports whether at least one ace is still counted as 11.
func (h Hand) IsSoft() bool {
	_, softAces := h.score()
	return softAces > 0
}

func (h Hand) score() (score, softAces int) {
	// First pass: calculate score treating aces as 11
	for _, card := range h.cards {
		if card.Rank == Ace {
			softAces++
		}
		score += card.Value()
	}

	// Second pass: convert aces from 11 to 1 as needed to avoid busting
	for softAces > 0 && score > Blackjack {
		score -= 10
		softAces--
	}
	return score, softAces
}

// DealerHand is a Hand whose first card is the hole card, hidden from the
// player until the round resolves, and whose second card is the upcard.
type DealerHand struct {
	hand Hand
}

func NewDealerHand(cards ...Card) DealerHand {
	return DealerHand{hand: NewHand(cards...)}
}

func (d DealerHand) Add(card Card) DealerHand {
	return DealerHand{hand: d.hand.Add(card)}
}

func (d DealerHand) Cards() []Card {
	return d.hand.Cards()
}

func (d DealerHand) Len() int {
	return d.hand.Len()
}

// Score includes the hole card.
func (d DealerHand) Score() int {
	return d.hand.Score()
}

func (d DealerHand) IsSoft() bool {
	return d.hand.IsSoft()
}

// HoleCard returns the first card dealt to the dealer.
func (d DealerHand) HoleCard() (Card, bool) {
	if len(d.hand.cards) < 1 {
		return Card{}, false
	}
	return d.hand.cards[0], true
}

// Upcard returns the second card dealt to the dealer.
func (d DealerHand) Upcard() (Card, bool) {
	if len(d.hand.cards) < 2 {
		return Card{}, false
	}
	return d.hand.cards[1], true
}

// Hand returns the dealer's cards as a plain Hand.
func (d DealerHand) Hand() Hand {
	return d.hand
}
