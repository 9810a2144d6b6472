package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextDealInitialHandsAlternates(t *testing.T) {
	cards := hearts(Ace, Two, Three, Four, Five)
	ctx := NewContext(NewDeck(cards...))

	next, err := ctx.DealInitialHands()
	require.NoError(t, err)

	assert.Equal(t, []Card{cards[0], cards[2]}, next.PlayerHand().Cards())
	assert.Equal(t, []Card{cards[1], cards[3]}, next.DealerHand().Cards())
	hole, _ := next.DealerHand().HoleCard()
	up, _ := next.DealerHand().Upcard()
	assert.Equal(t, cards[1], hole)
	assert.Equal(t, cards[3], up)
	assert.Equal(t, []Card{cards[4]}, next.Deck().Cards())

	assert.Equal(t, 5, ctx.Deck().Len(), "receiver must be unchanged")
	assert.Equal(t, 0, ctx.PlayerHand().Len())
}

func TestContextDealInitialHandsShortDeck(t *testing.T) {
	ctx := NewContext(NewDeck(hearts(Ace, Two, Three)...))

	_, err := ctx.DealInitialHands()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestContextDealPlayerCard(t *testing.T) {
	ctx, err := NewContext(NewDeck(hearts(Two, Three, Four, Five, Six)...)).DealInitialHands()
	require.NoError(t, err)

	next, card, err := ctx.DealPlayerCard()
	require.NoError(t, err)

	assert.Equal(t, heart(Six), card)
	assert.Equal(t, hearts(Two, Four, Six), next.PlayerHand().Cards())
	assert.Equal(t, hearts(Three, Five), next.DealerHand().Cards())
	assert.Equal(t, 0, next.Deck().Len())

	_, _, err = next.DealPlayerCard()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestContextPlayDealerHand(t *testing.T) {
	tests := []struct {
		name   string
		ranks  []Rank
		score  int
		drawn  int
		remain int
	}{
		{"stands on hard seventeen", []Rank{Ten, Ten, Ten, Seven, Two}, 17, 0, 1},
		{"stands on soft seventeen", []Rank{Ten, Ace, Ten, Six, Two}, 17, 0, 1},
		{"draws to seventeen", []Rank{Ten, Ten, Ten, Six, Ace, Five}, 17, 1, 1},
		{"draws through soft total", []Rank{Ten, Ten, Ten, Two, Ace, Four, Nine}, 17, 2, 1},
		{"draws and busts", []Rank{Ten, Ten, Ten, Six, Six}, 22, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewContext(NewDeck(hearts(tt.ranks...)...)).DealInitialHands()
			require.NoError(t, err)

			next, err := ctx.PlayDealerHand()
			require.NoError(t, err)

			assert.Equal(t, tt.score, next.DealerScore())
			assert.Equal(t, 2+tt.drawn, next.DealerHand().Len())
			assert.Equal(t, tt.remain, next.Deck().Len())
			assert.Equal(t, ctx.PlayerHand().Cards(), next.PlayerHand().Cards())
		})
	}
}

func TestContextPlayDealerHandExhaustsDeck(t *testing.T) {
	ctx, err := NewContext(NewDeck(hearts(Ten, Two, Ten, Three, Four)...)).DealInitialHands()
	require.NoError(t, err)

	_, err = ctx.PlayDealerHand()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestContextPredicates(t *testing.T) {
	tests := []struct {
		name            string
		player, dealer  []Rank
		playerBlackjack bool
		dealerBlackjack bool
		playerBusts     bool
		dealerBusts     bool
		playerWins      bool
		dealerWins      bool
		draw            bool
	}{
		{
			name:   "player higher",
			player: []Rank{Ten, Ten}, dealer: []Rank{Ten, Seven},
			playerWins: true,
		},
		{
			name:   "dealer higher",
			player: []Rank{Ten, Seven}, dealer: []Rank{Ten, Nine},
			dealerWins: true,
		},
		{
			name:   "equal scores",
			player: []Rank{Ten, Eight}, dealer: []Rank{Nine, Nine},
			draw: true,
		},
		{
			name:   "dealer busts",
			player: []Rank{Ten, Two}, dealer: []Rank{Ten, Six, Six},
			dealerBusts: true, playerWins: true,
		},
		{
			name:   "both blackjack",
			player: []Rank{Ace, King}, dealer: []Rank{Queen, Ace},
			playerBlackjack: true, dealerBlackjack: true, draw: true,
		},
		{
			name:   "player busts",
			player: []Rank{Ten, Six, Nine}, dealer: []Rank{Ten, Seven},
			playerBusts: true, playerWins: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Context{
				player: NewHand(hearts(tt.player...)...),
				dealer: NewDealerHand(hearts(tt.dealer...)...),
			}
			assert.Equal(t, tt.playerBlackjack, ctx.PlayerBlackjack(), "player blackjack")
			assert.Equal(t, tt.dealerBlackjack, ctx.DealerBlackjack(), "dealer blackjack")
			assert.Equal(t, tt.playerBlackjack && tt.dealerBlackjack, ctx.DoubleBlackjack(), "double blackjack")
			assert.Equal(t, tt.playerBusts, ctx.PlayerBusts(), "player busts")
			assert.Equal(t, tt.dealerBusts, ctx.DealerBusts(), "dealer busts")
			assert.Equal(t, tt.playerWins, ctx.PlayerWins(), "player wins")
			assert.Equal(t, tt.dealerWins, ctx.DealerWins(), "dealer wins")
			assert.Equal(t, tt.draw, ctx.IsDraw(), "draw")
		})
	}
}

func TestFreshContext(t *testing.T) {
	ctx := FreshContext()

	standard := StandardDeck().Cards()
	assert.NotEqual(t, standard, ctx.Deck().Cards())
	assert.ElementsMatch(t, standard, ctx.Deck().Cards())
	assert.Equal(t, 0, ctx.PlayerHand().Len())
	assert.Equal(t, 0, ctx.DealerHand().Len())
}

func TestContextConservesCards(t *testing.T) {
	ctx, err := FreshContext().DealInitialHands()
	require.NoError(t, err)
	ctx, _, err = ctx.DealPlayerCard()
	require.NoError(t, err)
	ctx, err = ctx.PlayDealerHand()
	require.NoError(t, err)

	assert.Len(t, ctx.AllCards(), 52)
	assert.ElementsMatch(t, StandardDeck().Cards(), ctx.AllCards())
}
