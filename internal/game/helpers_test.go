package game

// hearts builds one heart per rank, in order. Suits are irrelevant to scoring,
// so scenario decks repeat cards freely.
func hearts(ranks ...Rank) []Card {
	cards := make([]Card, len(ranks))
	for i, rank := range ranks {
		cards[i] = Card{Suit: Hearts, Rank: rank}
	}
	return cards
}

func heart(rank Rank) Card {
	return Card{Suit: Hearts, Rank: rank}
}

func readyWith(ranks ...Rank) GameState {
	return Ready{ctx: NewContext(NewDeck(hearts(ranks...)...))}
}

func findAction[T Action](actions []Action) (T, bool) {
	for _, a := range actions {
		if found, ok := a.(T); ok {
			return found, true
		}
	}
	var zero T
	return zero, false
}
