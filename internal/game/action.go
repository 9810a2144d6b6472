package game

import "slices"

type ActionType string

const (
	ActionNewHand            ActionType = "newHand"
	ActionNewPlayerCard      ActionType = "newPlayerCard"
	ActionNewDealerCards     ActionType = "newDealerCards"
	ActionShowDealerHoleCard ActionType = "showDealerHoleCard"
	ActionPlayerWins         ActionType = "playerWins"
	ActionDealerWins         ActionType = "dealerWins"
	ActionDraw               ActionType = "draw"
)

// Action describes one visible consequence of a transition. Transitions return
// actions in the order a front end should present them.
type Action interface {
	Type() ActionType
	action()
}

// NewHandAction reports the initial two-card deal to each side.
type NewHandAction struct {
	Player Hand
	Dealer DealerHand
}

type NewPlayerCardAction struct {
	Card Card
}

// NewDealerCardsAction lists the cards the dealer drew while playing out.
type NewDealerCardsAction struct {
	Cards []Card
}

type ShowDealerHoleCardAction struct {
	Card Card
}

type PlayerWinsAction struct{}
type DealerWinsAction struct{}
type DrawAction struct{}

func (NewHandAction) Type() ActionType            { return ActionNewHand }
func (NewPlayerCardAction) Type() ActionType      { return ActionNewPlayerCard }
func (NewDealerCardsAction) Type() ActionType     { return ActionNewDealerCards }
func (ShowDealerHoleCardAction) Type() ActionType { return ActionShowDealerHoleCard }
func (PlayerWinsAction) Type() ActionType         { return ActionPlayerWins }
func (DealerWinsAction) Type() ActionType         { return ActionDealerWins }
func (DrawAction) Type() ActionType               { return ActionDraw }

func (NewHandAction) action()            {}
func (NewPlayerCardAction) action()      {}
func (NewDealerCardsAction) action()     {}
func (ShowDealerHoleCardAction) action() {}
func (PlayerWinsAction) action()         {}
func (DealerWinsAction) action()         {}
func (DrawAction) action()               {}

func newHandAction(c Context) Action {
	return NewHandAction{Player: c.player, Dealer: c.dealer}
}

func newDealerCardsAction(cards []Card) Action {
	return NewDealerCardsAction{Cards: slices.Clone(cards)}
}
