package game

import "github.com/lox/holdem-engine/poker"

// Player identifies whoever occupies a seat.
type Player struct {
	ID   string
	Name string
}

// Status is a seat's standing in the current hand.
type Status int

const (
	Active Status = iota
	Folded
	AllIn
	Out
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Folded:
		return "folded"
	case AllIn:
		return "all-in"
	case Out:
		return "out"
	}
	return "unknown"
}

// Position is a seat's label relative to the button for one hand.
type Position int

const (
	NoPosition Position = iota
	Button
	SmallBlind
	BigBlind
	UTG
	UTG1
	UTG2
	MiddlePosition
	Lojack
	Hijack
	Cutoff
)

var positionNames = map[Position]string{
	NoPosition:     "",
	Button:         "BTN",
	SmallBlind:     "SB",
	BigBlind:       "BB",
	UTG:            "UTG",
	UTG1:           "UTG1",
	UTG2:           "UTG2",
	MiddlePosition: "MP",
	Lojack:         "LJ",
	Hijack:         "HJ",
	Cutoff:         "CO",
}

func (p Position) String() string {
	return positionNames[p]
}

// Seat is one chair at the table. Bet is the chips committed on the
// current street and TotalBet the chips committed over the whole hand;
// both have already been moved into the pot.
type Seat struct {
	Index    int
	Player   *Player
	Stack    int
	Position Position
	Hole     []poker.Card
	Bet      int
	TotalBet int
	Status   Status
	Acted    bool
}

// Occupied reports whether a player sits here.
func (s *Seat) Occupied() bool {
	return s.Player != nil
}

// InHand reports whether the seat can still win chips this hand.
func (s *Seat) InHand() bool {
	return s.Occupied() && (s.Status == Active || s.Status == AllIn)
}

// CanAct reports whether the seat can still make betting decisions.
func (s *Seat) CanAct() bool {
	return s.Occupied() && s.Status == Active && s.Stack > 0
}

func (s *Seat) resetForHand() {
	s.Position = NoPosition
	s.Hole = nil
	s.Bet = 0
	s.TotalBet = 0
	s.Acted = false
	switch {
	case !s.Occupied() || s.Stack <= 0:
		s.Status = Out
	default:
		s.Status = Active
	}
}

// commit moves up to amount chips from the stack into the pot and returns
// the amount actually moved.
func (s *Seat) commit(amount int) int {
	if amount > s.Stack {
		amount = s.Stack
	}
	s.Stack -= amount
	s.Bet += amount
	s.TotalBet += amount
	if s.Stack == 0 && s.Status == Active {
		s.Status = AllIn
	}
	return amount
}

func (s *Seat) name() string {
	if s.Player == nil {
		return ""
	}
	if s.Player.Name != "" {
		return s.Player.Name
	}
	return s.Player.ID
}
