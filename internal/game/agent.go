package game

import "github.com/lox/holdem-engine/poker"

// PublicSeat is what every player can see about a seat.
type PublicSeat struct {
	Index    int
	Name     string
	Stack    int
	Bet      int
	TotalBet int
	Status   Status
	Position Position
}

// View is the state visible to one seat when it is asked to act.
type View struct {
	HandID       string
	Seat         int
	Street       Street
	Hole         []poker.Card
	Board        []poker.Card
	Pot          int
	Stack        int
	Bet          int
	AmountToCall int
	ToCall       int // chips this seat needs to call
	MinRaise     int
	BigBlind     int
	Dealer       int
	Position     Position
	Seats        []PublicSeat
	Legal        []LegalAction
}

// Can reports whether t is among the legal actions.
func (v View) Can(t ActionType) bool {
	_, ok := findLegal(v.Legal, t)
	return ok
}

// Bounds returns the legal range for t.
func (v View) Bounds(t ActionType) (LegalAction, bool) {
	return findLegal(v.Legal, t)
}

// Agent chooses an action for a seat.
type Agent interface {
	Decide(View) Action
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(View) Action

func (f AgentFunc) Decide(v View) Action { return f(v) }

// CheckOrFold is the action taken for a seat that fails to choose a legal one.
func CheckOrFold(legal []LegalAction) Action {
	if _, ok := findLegal(legal, Check); ok {
		return Action{Type: Check}
	}
	return Action{Type: Fold}
}
