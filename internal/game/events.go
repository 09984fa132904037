package game

import "github.com/lox/holdem-engine/poker"

// Event is something that happened during a hand.
type Event interface {
	EventType() string
}

// Observer receives hand events synchronously, in order.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// SeatInfo is the public state of a seat at the start of a hand.
type SeatInfo struct {
	Index    int
	Player   Player
	Stack    int
	Position Position
}

type HandStarted struct {
	HandID     string
	SeatCount  int
	Dealer     int
	SmallBlind int
	BigBlind   int
	Stakes     [2]int
	Seats      []SeatInfo
}

type BlindPosted struct {
	HandID string
	Seat   int
	Amount int
	Big    bool
}

type HoleCardsDealt struct {
	HandID string
	Seat   int
	Cards  []poker.Card
}

type ActionTaken struct {
	HandID  string
	Seat    int
	Street  Street
	Action  Action
	Applied Applied
	Pot     int
	Forced  bool
}

type StreetDealt struct {
	HandID string
	Street Street
	Cards  []poker.Card
	Board  []poker.Card
}

type PotAwarded struct {
	HandID  string
	Pot     int
	Amount  int
	Winners []int
	Shares  map[int]int
}

type HandEnded struct {
	HandID string
	Result *Result
}

func (HandStarted) EventType() string { return "hand_started" }
func (BlindPosted) EventType() string { return "blind_posted" }
func (HoleCardsDealt) EventType() string { return "hole_cards_dealt" }
func (ActionTaken) EventType() string { return "action_taken" }
func (StreetDealt) EventType() string { return "street_dealt" }
func (PotAwarded) EventType() string { return "pot_awarded" }
func (HandEnded) EventType() string { return "hand_ended" }
