package game

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrEmptyDeck is returned when a card is dealt from a deck with no cards left.
var ErrEmptyDeck = errors.New("dealing from an empty deck")

// Deck is an immutable ordered sequence of cards. The front card is dealt next.
// Operations return a new Deck and never modify the receiver.
type Deck struct {
	cards []Card
}

// NewDeck builds a deck holding exactly the given cards, first card on top.
func NewDeck(cards ...Card) Deck {
	return Deck{cards: slices.Clone(cards)}
}

// StandardDeck returns the 52-card deck in canonical order.
func StandardDeck() Deck {
	cards := make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return Deck{cards: cards}
}

// Shuffle returns a copy of the deck in uniformly random order.
func (d Deck) Shuffle() Deck {
	return d.shuffle(rand.IntN)
}

// ShuffleWith shuffles using the given source so the order can be reproduced.
func (d Deck) ShuffleWith(r *rand.Rand) Deck {
	return d.shuffle(r.IntN)
}

func (d Deck) shuffle(intn func(int) int) Deck {
	cards := slices.Clone(d.cards)

	// Fisher-Yates shuffle algorithm
	for i := len(cards) - 1; i > 0; i-- {
		j := intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{cards: cards}
}

// Deal returns the deck without its top card, and that card.
func (d Deck) Deal() (Deck, Card, error) {
	if len(d.cards) == 0 {
		return d, Card{}, ErrEmptyDeck
	}
	return Deck{cards: d.cards[1:]}, d.cards[0], nil
}

// Len returns the number of cards left in the deck
func (d Deck) Len() int {
	return len(d.cards)
}

func (d Deck) Cards() []Card {
	return slices.Clone(d.cards)
}
