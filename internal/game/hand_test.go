package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandScore(t *testing.T) {
	tests := []struct {
		name     string
		ranks    []Rank
		expected int
		soft     bool
	}{
		{"empty hand", nil, 0, false},
		{"single card", []Rank{Two}, 2, false},
		{"two cards add", []Rank{Two, Three}, 5, false},
		{"face cards", []Rank{King, Queen}, 20, false},
		{"ace ten is 21", []Rank{Ace, Ten}, 21, true},
		{"ten ace ace is 12", []Rank{Ten, Ace, Ace}, 12, false},
		{"ace ace ten is 12", []Rank{Ace, Ace, Ten}, 12, false},
		{"two aces", []Rank{Ace, Ace}, 12, true},
		{"soft seventeen", []Rank{Ace, Six}, 17, true},
		{"soft seventeen made hard", []Rank{Ace, Six, Ten}, 17, false},
		{"bust with two aces", []Rank{Ten, Ten, Ace, Ace}, 22, false},
		{"four aces", []Rank{Ace, Ace, Ace, Ace}, 14, true},
		{"plain bust", []Rank{Ten, Six, Eight}, 24, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := NewHand(hearts(tt.ranks...)...)
			assert.Equal(t, tt.expected, hand.Score())
			assert.Equal(t, tt.soft, hand.IsSoft())
		})
	}
}

func TestHandAddLeavesOriginalUnchanged(t *testing.T) {
	original := NewHand(heart(Two))
	added := original.Add(heart(Three))

	assert.Equal(t, hearts(Two), original.Cards())
	assert.Equal(t, hearts(Two, Three), added.Cards())
}

func TestHandAddDoesNotAlias(t *testing.T) {
	base := NewHand(heart(Two)).Add(heart(Three))
	left := base.Add(heart(Four))
	right := base.Add(heart(Five))

	assert.Equal(t, hearts(Two, Three, Four), left.Cards())
	assert.Equal(t, hearts(Two, Three, Five), right.Cards())
}

func TestHandReadsAreIdempotent(t *testing.T) {
	hand := NewHand(hearts(Ten, Ace, Ace)...)

	cards := hand.Cards()
	cards[0] = heart(King)

	assert.Equal(t, 12, hand.Score())
	assert.Equal(t, 12, hand.Score())
	assert.Equal(t, hearts(Ten, Ace, Ace), hand.Cards())
	assert.Equal(t, hand.Cards(), hand.Cards())
}

func TestDealerHandHoleCardAndUpcard(t *testing.T) {
	empty := NewDealerHand()
	_, ok := empty.HoleCard()
	assert.False(t, ok)
	_, ok = empty.Upcard()
	assert.False(t, ok)

	one := empty.Add(heart(Nine))
	hole, ok := one.HoleCard()
	assert.True(t, ok)
	assert.Equal(t, heart(Nine), hole)
	_, ok = one.Upcard()
	assert.False(t, ok)

	two := one.Add(Card{Suit: Spades, Rank: King})
	up, ok := two.Upcard()
	assert.True(t, ok)
	assert.Equal(t, Card{Suit: Spades, Rank: King}, up)

	three := two.Add(heart(Two))
	hole, _ = three.HoleCard()
	up, _ = three.Upcard()
	assert.Equal(t, heart(Nine), hole)
	assert.Equal(t, Card{Suit: Spades, Rank: King}, up)
}

func TestDealerHandScoreIncludesHoleCard(t *testing.T) {
	dealer := NewDealerHand(hearts(Ten, Ten)...)
	assert.Equal(t, 20, dealer.Score())
	assert.Equal(t, 20, dealer.Hand().Score())
}
