package game

import "fmt"

// Street is a betting round.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	}
	return "unknown"
}

// ActionType is the kind of a betting action.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	}
	return "unknown"
}

// Action is a decision by the seat to act. For Bet and Raise, Amount is the
// total the seat will have committed on this street afterwards. It is
// ignored for the other types.
type Action struct {
	Type   ActionType
	Amount int
}

func (a Action) String() string {
	if a.Type == Bet || a.Type == Raise {
		return fmt.Sprintf("%s %d", a.Type, a.Amount)
	}
	return a.Type.String()
}

// LegalAction describes one permitted action. For Bet, Raise and AllIn the
// bounds are street totals; for Call both hold the chips needed to call.
type LegalAction struct {
	Type ActionType
	Min  int
	Max  int
}

// Applied reports the effect of an accepted action.
type Applied struct {
	Seat     int
	Type     ActionType
	Chips    int  // moved from stack to pot
	Total    int  // seat's street total afterwards
	AllIn    bool // seat has no chips left
	Reopened bool // a full bet or raise reset the other seats
}

// Betting is the state of the current street.
type Betting struct {
	Street       Street
	ToAct        int // -1 when nobody is to act
	AmountToCall int // highest street total outstanding
	MinRaise     int // smallest legal raise increment
	LastRaiser   int // -1 when nobody has bet this street
	BigBlind     int
}

// ResetStreet starts a new street: bets and acted flags are cleared and the
// minimum raise returns to the big blind.
func (b *Betting) ResetStreet(street Street, seats []Seat) {
	b.Street = street
	b.ToAct = -1
	b.AmountToCall = 0
	b.MinRaise = b.BigBlind
	b.LastRaiser = -1
	for i := range seats {
		seats[i].Bet = 0
		seats[i].Acted = false
	}
}

// needsAction reports whether the seat still owes a decision this street.
func (b *Betting) needsAction(s *Seat) bool {
	return s.CanAct() && (!s.Acted || s.Bet < b.AmountToCall)
}

// LegalActions returns what seat i may do. It is empty when i is not the
// seat to act. A seat that has already acted this street and faces only an
// incomplete all-in raise may call or fold but not raise, so AllIn is offered
// to it only when going all-in is no more than a call.
func (b *Betting) LegalActions(seats []Seat, i int) []LegalAction {
	if i < 0 || i >= len(seats) || i != b.ToAct {
		return nil
	}
	s := &seats[i]
	if !s.CanAct() {
		return nil
	}

	owed := b.AmountToCall - s.Bet
	allInTotal := s.Bet + s.Stack
	// a seat that has acted was not reopened by the incomplete raise it faces
	canRaise := !s.Acted

	actions := []LegalAction{{Type: Fold}}
	if owed <= 0 {
		actions = append(actions, LegalAction{Type: Check})
	} else {
		call := min(owed, s.Stack)
		actions = append(actions, LegalAction{Type: Call, Min: call, Max: call})
	}

	switch {
	case b.AmountToCall == 0:
		if canRaise {
			lo := min(s.Stack, max(b.MinRaise, b.BigBlind))
			actions = append(actions, LegalAction{Type: Bet, Min: lo, Max: allInTotal})
		}
	case s.Stack > owed && canRaise:
		lo := min(allInTotal, b.AmountToCall+b.MinRaise)
		actions = append(actions, LegalAction{Type: Raise, Min: lo, Max: allInTotal})
	}

	if canRaise || allInTotal <= b.AmountToCall {
		actions = append(actions, LegalAction{Type: AllIn, Min: allInTotal, Max: allInTotal})
	}
	return actions
}

func findLegal(legal []LegalAction, t ActionType) (LegalAction, bool) {
	for _, la := range legal {
		if la.Type == t {
			return la, true
		}
	}
	return LegalAction{}, false
}

// Apply validates and applies an action by seat i, then moves ToAct on.
// An illegal action returns ErrIllegalAction and changes nothing.
func (b *Betting) Apply(seats []Seat, i int, a Action) (Applied, error) {
	if i < 0 || i >= len(seats) {
		return Applied{}, fmt.Errorf("seat %d out of range: %w", i, ErrIllegalAction)
	}
	if i != b.ToAct {
		return Applied{}, fmt.Errorf("seat %d acted out of turn (to act: %d): %w", i, b.ToAct, ErrIllegalAction)
	}
	legal := b.LegalActions(seats, i)
	la, ok := findLegal(legal, a.Type)
	if !ok {
		return Applied{}, fmt.Errorf("seat %d cannot %s: %w", i, a.Type, ErrIllegalAction)
	}
	if (a.Type == Bet || a.Type == Raise) && (a.Amount < la.Min || a.Amount > la.Max) {
		return Applied{}, fmt.Errorf("seat %d %s to %d outside [%d, %d]: %w",
			i, a.Type, a.Amount, la.Min, la.Max, ErrIllegalAction)
	}

	s := &seats[i]
	res := Applied{Seat: i, Type: a.Type}
	switch a.Type {
	case Fold:
		s.Status = Folded
		s.Hole = nil
	case Check:
	case Call:
		res.Chips = s.commit(la.Min)
	case Bet, Raise:
		res.Chips = s.commit(a.Amount - s.Bet)
		res.Reopened = b.raiseTo(seats, i)
	case AllIn:
		res.Chips = s.commit(s.Stack)
		if s.Bet > b.AmountToCall {
			res.Reopened = b.raiseTo(seats, i)
		}
	}
	s.Acted = true
	res.Total = s.Bet
	res.AllIn = s.Status == AllIn

	if b.Closed(seats) {
		b.ToAct = -1
	} else {
		b.ToAct = b.NextActor(seats, i)
	}
	return res, nil
}

// raiseTo records seat i's new street total as the amount to call. Only an
// increase of at least MinRaise counts as a full raise and reopens action.
func (b *Betting) raiseTo(seats []Seat, i int) bool {
	total := seats[i].Bet
	increment := total - b.AmountToCall
	b.AmountToCall = total
	if increment < b.MinRaise {
		return false
	}
	b.MinRaise = increment
	b.LastRaiser = i
	for j := range seats {
		if j != i && seats[j].Status == Active {
			seats[j].Acted = false
		}
	}
	return true
}

// Closed reports whether the street's betting is over.
func (b *Betting) Closed(seats []Seat) bool {
	inHand, canAct, pending := 0, 0, 0
	last := -1
	for i := range seats {
		s := &seats[i]
		if s.InHand() {
			inHand++
		}
		if s.CanAct() {
			canAct++
			last = i
		}
		if b.needsAction(s) {
			pending++
		}
	}
	if inHand <= 1 || pending == 0 {
		return true
	}
	// nobody left to bet against once the last active seat has matched
	return canAct == 1 && seats[last].Bet >= b.AmountToCall
}

// NextActor returns the first seat after from that still owes a decision,
// or -1 if none does.
func (b *Betting) NextActor(seats []Seat, from int) int {
	n := len(seats)
	for step := 1; step <= n; step++ {
		i := ((from+step)%n + n) % n
		if b.needsAction(&seats[i]) {
			return i
		}
	}
	return -1
}
