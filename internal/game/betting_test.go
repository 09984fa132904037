package game

import (
	"errors"
	"testing"
)

func streetSeats(stacks ...int) []Seat {
	seats := make([]Seat, len(stacks))
	for i, s := range stacks {
		p := Player{ID: string(rune('a' + i))}
		seats[i] = Seat{Index: i, Player: &p, Stack: s, Status: Active}
	}
	return seats
}

func newStreet(seats []Seat, bb, first int) *Betting {
	b := &Betting{BigBlind: bb}
	b.ResetStreet(Flop, seats)
	b.ToAct = first
	return b
}

func apply(t *testing.T, b *Betting, seats []Seat, i int, a Action) Applied {
	t.Helper()
	res, err := b.Apply(seats, i, a)
	if err != nil {
		t.Fatalf("seat %d %s: %v", i, a, err)
	}
	return res
}

func TestLegalActionsUnopened(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 1000)
	b := newStreet(seats, 100, 0)

	legal := b.LegalActions(seats, 0)
	for _, at := range []ActionType{Fold, Check, Bet, AllIn} {
		if !hasAction(legal, at) {
			t.Errorf("expected %s to be legal", at)
		}
	}
	if hasAction(legal, Call) || hasAction(legal, Raise) {
		t.Errorf("call/raise should not be legal with no bet: %+v", legal)
	}
	bet, _ := findLegal(legal, Bet)
	if bet.Min != 100 || bet.Max != 1000 {
		t.Errorf("bet range = [%d,%d], want [100,1000]", bet.Min, bet.Max)
	}
	if b.LegalActions(seats, 1) != nil {
		t.Error("seat not to act should have no legal actions")
	}
}

func TestLegalActionsShortStackBet(t *testing.T) {
	t.Parallel()
	seats := streetSeats(60, 1000)
	b := newStreet(seats, 100, 0)
	bet, ok := findLegal(b.LegalActions(seats, 0), Bet)
	if !ok || bet.Min != 60 || bet.Max != 60 {
		t.Fatalf("short stack bet = %+v", bet)
	}
}

func TestBetRaiseFold(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 1000)
	b := newStreet(seats, 100, 0)

	res := apply(t, b, seats, 0, Action{Type: Bet, Amount: 200})
	if seats[0].Stack != 800 || res.Chips != 200 || !res.Reopened {
		t.Fatalf("after bet: stack=%d applied=%+v", seats[0].Stack, res)
	}
	if b.ToAct != 1 {
		t.Fatalf("ToAct = %d, want 1", b.ToAct)
	}

	raise, _ := findLegal(b.LegalActions(seats, 1), Raise)
	if raise.Min != 400 || raise.Max != 1000 {
		t.Fatalf("raise range = [%d,%d], want [400,1000]", raise.Min, raise.Max)
	}
	apply(t, b, seats, 1, Action{Type: Raise, Amount: 600})
	if seats[1].Stack != 400 || b.MinRaise != 400 || b.AmountToCall != 600 || b.LastRaiser != 1 {
		t.Fatalf("after raise: stack=%d minRaise=%d toCall=%d lastRaiser=%d",
			seats[1].Stack, b.MinRaise, b.AmountToCall, b.LastRaiser)
	}
	if seats[0].Acted {
		t.Fatal("raise should reset the bettor's acted flag")
	}
	if b.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", b.ToAct)
	}

	apply(t, b, seats, 0, Action{Type: Fold})
	if !b.Closed(seats) || b.ToAct != -1 {
		t.Fatal("street should close once one seat remains")
	}
	if seats[0].TotalBet+seats[1].TotalBet != 800 {
		t.Fatalf("committed = %d, want 800", seats[0].TotalBet+seats[1].TotalBet)
	}
}

func TestIllegalActionsDoNotMutate(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 1000, 1000)
	b := newStreet(seats, 100, 0)
	apply(t, b, seats, 0, Action{Type: Bet, Amount: 200})

	before := append([]Seat(nil), seats...)
	snapshot := *b

	tests := []struct {
		name string
		seat int
		act  Action
	}{
		{"out of turn", 2, Action{Type: Call}},
		{"check facing bet", 1, Action{Type: Check}},
		{"bet when bet outstanding", 1, Action{Type: Bet, Amount: 300}},
		{"raise below minimum", 1, Action{Type: Raise, Amount: 300}},
		{"raise above stack", 1, Action{Type: Raise, Amount: 1001}},
		{"seat out of range", 7, Action{Type: Fold}},
	}
	for _, tt := range tests {
		_, err := b.Apply(seats, tt.seat, tt.act)
		if !errors.Is(err, ErrIllegalAction) {
			t.Errorf("%s: expected ErrIllegalAction, got %v", tt.name, err)
		}
	}
	for i := range seats {
		if seats[i].Stack != before[i].Stack || seats[i].Bet != before[i].Bet ||
			seats[i].Acted != before[i].Acted || seats[i].Status != before[i].Status {
			t.Fatalf("seat %d mutated by rejected action", i)
		}
	}
	if *b != snapshot {
		t.Fatal("betting state mutated by rejected action")
	}
}

func TestFullRaiseReopensAction(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 1000, 1000, 1000)
	b := newStreet(seats, 100, 0)
	apply(t, b, seats, 0, Action{Type: Bet, Amount: 100})
	apply(t, b, seats, 1, Action{Type: Call})
	apply(t, b, seats, 2, Action{Type: Fold})
	apply(t, b, seats, 3, Action{Type: Raise, Amount: 300})

	for _, i := range []int{0, 1} {
		if seats[i].Acted {
			t.Errorf("seat %d acted flag not reset by raise", i)
		}
	}
	if !seats[3].Acted {
		t.Error("raiser should be marked acted")
	}
	if b.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", b.ToAct)
	}
}

func TestIncompleteAllInDoesNotReopen(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 1000, 250)
	b := newStreet(seats, 100, 0)
	apply(t, b, seats, 0, Action{Type: Bet, Amount: 200})
	apply(t, b, seats, 1, Action{Type: Call})

	res := apply(t, b, seats, 2, Action{Type: AllIn})
	if res.Reopened || !res.AllIn {
		t.Fatalf("short all-in applied = %+v", res)
	}
	if b.AmountToCall != 250 || b.MinRaise != 200 || b.LastRaiser != 0 {
		t.Fatalf("toCall=%d minRaise=%d lastRaiser=%d", b.AmountToCall, b.MinRaise, b.LastRaiser)
	}
	if !seats[0].Acted || !seats[1].Acted {
		t.Fatal("incomplete raise must not reset acted flags")
	}

	// seat 0 owes 50 more but may not re-raise
	if b.ToAct != 0 {
		t.Fatalf("ToAct = %d, want 0", b.ToAct)
	}
	legal := b.LegalActions(seats, 0)
	if hasAction(legal, Raise) || hasAction(legal, AllIn) {
		t.Fatalf("seat facing only an incomplete raise may not raise: %+v", legal)
	}
	call, ok := findLegal(legal, Call)
	if !ok || call.Min != 50 {
		t.Fatalf("call = %+v", call)
	}
	apply(t, b, seats, 0, Action{Type: Call})
	apply(t, b, seats, 1, Action{Type: Call})
	if !b.Closed(seats) {
		t.Fatal("street should be closed")
	}
}

func TestIncompleteRaiseStillLetsUnactedSeatRaise(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 250, 1000)
	b := newStreet(seats, 100, 0)
	apply(t, b, seats, 0, Action{Type: Bet, Amount: 200})
	apply(t, b, seats, 1, Action{Type: AllIn})

	legal := b.LegalActions(seats, 2)
	raise, ok := findLegal(legal, Raise)
	if !ok {
		t.Fatal("seat yet to act should be allowed to raise")
	}
	if raise.Min != 450 {
		t.Fatalf("min raise total = %d, want 450", raise.Min)
	}
}

func TestAllInCallForLess(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 150, 1000)
	b := newStreet(seats, 100, 0)
	apply(t, b, seats, 0, Action{Type: Bet, Amount: 400})

	legal := b.LegalActions(seats, 1)
	call, _ := findLegal(legal, Call)
	if call.Min != 150 {
		t.Fatalf("call for less = %d, want 150", call.Min)
	}
	if hasAction(legal, Raise) {
		t.Fatal("cannot raise without chips beyond the call")
	}
	res := apply(t, b, seats, 1, Action{Type: Call})
	if !res.AllIn || seats[1].Status != AllIn {
		t.Fatal("calling off the stack should put the seat all-in")
	}
	if b.AmountToCall != 400 {
		t.Fatalf("short call changed amount to call to %d", b.AmountToCall)
	}
	if b.ToAct != 2 {
		t.Fatalf("ToAct = %d, want 2", b.ToAct)
	}
}

func TestClosedWhenOnlyAllInsRemain(t *testing.T) {
	t.Parallel()
	seats := streetSeats(500, 300)
	b := newStreet(seats, 100, 0)
	apply(t, b, seats, 0, Action{Type: Bet, Amount: 300})
	apply(t, b, seats, 1, Action{Type: Call})
	if !b.Closed(seats) {
		t.Fatal("street should close when the caller is all-in")
	}
}

func TestNextActorSkipsFoldedAndAllIn(t *testing.T) {
	t.Parallel()
	seats := streetSeats(1000, 1000, 1000, 1000)
	seats[1].Status = Folded
	seats[2].Status = AllIn
	seats[2].Stack = 0
	b := newStreet(seats, 100, 0)
	if got := b.NextActor(seats, 0); got != 3 {
		t.Fatalf("NextActor = %d, want 3", got)
	}
	if got := b.NextActor(seats, 3); got != 0 {
		t.Fatalf("NextActor wraps to %d, want 0", got)
	}
}
