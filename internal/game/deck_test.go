package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardDeck(t *testing.T) {
	deck := StandardDeck()
	require.Equal(t, 52, deck.Len())

	seen := make(map[Card]bool)
	for _, card := range deck.Cards() {
		assert.True(t, card.Valid(), "invalid card %v", card)
		assert.False(t, seen[card], "duplicate card %v", card)
		seen[card] = true
	}

	cards := deck.Cards()
	assert.Equal(t, Card{Suit: Hearts, Rank: Two}, cards[0])
	assert.Equal(t, Card{Suit: Hearts, Rank: Ace}, cards[12])
	assert.Equal(t, Card{Suit: Diamonds, Rank: Two}, cards[13])
	assert.Equal(t, Card{Suit: Clubs, Rank: Ace}, cards[51])

	assert.Equal(t, cards, StandardDeck().Cards(), "standard deck order is fixed")
}

func TestDeckShuffleKeepsCards(t *testing.T) {
	standard := StandardDeck()
	shuffled := standard.Shuffle()

	assert.ElementsMatch(t, standard.Cards(), shuffled.Cards())
	assert.NotEqual(t, standard.Cards(), shuffled.Cards())
	assert.Equal(t, StandardDeck().Cards(), standard.Cards(), "shuffle must not reorder the receiver")
}

func TestDeckShuffleWithSeedIsReproducible(t *testing.T) {
	first := StandardDeck().ShuffleWith(rand.New(rand.NewPCG(1, 2)))
	second := StandardDeck().ShuffleWith(rand.New(rand.NewPCG(1, 2)))
	other := StandardDeck().ShuffleWith(rand.New(rand.NewPCG(3, 4)))

	assert.Equal(t, first.Cards(), second.Cards())
	assert.NotEqual(t, first.Cards(), other.Cards())
}

func TestDeckShuffleSmallDecks(t *testing.T) {
	assert.Equal(t, 0, NewDeck().Shuffle().Len())
	assert.Equal(t, hearts(Ace), NewDeck(heart(Ace)).Shuffle().Cards())
}

func TestDeckDealTakesTopCard(t *testing.T) {
	deck := NewDeck(heart(Ace), Card{Suit: Hearts, Rank: King})

	rest, card, err := deck.Deal()
	require.NoError(t, err)

	assert.Equal(t, heart(Ace), card)
	assert.Equal(t, []Card{{Suit: Hearts, Rank: King}}, rest.Cards())
	assert.Equal(t, 2, deck.Len(), "dealing must not change the original deck")
}

func TestDeckDealPreservesOrder(t *testing.T) {
	deck := NewDeck(hearts(Two, Three, Four, Five)...)

	rest, _, err := deck.Deal()
	require.NoError(t, err)
	assert.Equal(t, hearts(Three, Four, Five), rest.Cards())
}

func TestDeckDealAll(t *testing.T) {
	deck := StandardDeck()
	for i := 0; i < 52; i++ {
		var err error
		deck, _, err = deck.Deal()
		require.NoError(t, err, "deal %d", i+1)
	}
	assert.Equal(t, 0, deck.Len())

	_, _, err := deck.Deal()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestDeckDealEmpty(t *testing.T) {
	_, _, err := NewDeck().Deal()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestNewDeckCopiesInput(t *testing.T) {
	cards := hearts(Two, Three)
	deck := NewDeck(cards...)
	cards[0] = heart(Ace)

	assert.Equal(t, hearts(Two, Three), deck.Cards())

	out := deck.Cards()
	out[1] = heart(King)
	assert.Equal(t, hearts(Two, Three), deck.Cards())
}
