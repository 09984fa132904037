package game

import (
	"errors"
	"testing"

	"github.com/lox/holdem-engine/poker"
)

func committedSeats(bets []int, statuses []Status) []Seat {
	seats := make([]Seat, len(bets))
	for i := range bets {
		p := Player{ID: string(rune('a' + i))}
		seats[i] = Seat{
			Index:    i,
			Player:   &p,
			TotalBet: bets[i],
			Status:   statuses[i],
			Hole:     poker.MustParseCards([]string{"2c 3c", "4d 5d", "6h 7h", "8s 9s", "Tc Jc"}[i]),
		}
	}
	return seats
}

func TestBuildPotsLayers(t *testing.T) {
	t.Parallel()
	seats := committedSeats(
		[]int{300, 700, 700, 100},
		[]Status{AllIn, AllIn, Active, Folded},
	)
	pots, err := BuildPots(seats)
	if err != nil {
		t.Fatal(err)
	}
	if len(pots) != 2 {
		t.Fatalf("got %d pots, want 2", len(pots))
	}
	if pots[0].Amount != 1000 || len(pots[0].Eligible) != 3 {
		t.Errorf("main pot = %+v", pots[0])
	}
	if pots[1].Amount != 800 || len(pots[1].Eligible) != 2 {
		t.Errorf("side pot = %+v", pots[1])
	}
}

func TestBuildPotsDeadMoneyGoesToTopLayer(t *testing.T) {
	t.Parallel()
	seats := committedSeats(
		[]int{500, 200, 200},
		[]Status{Folded, AllIn, Active},
	)
	pots, err := BuildPots(seats)
	if err != nil {
		t.Fatal(err)
	}
	if len(pots) != 1 || pots[0].Amount != 900 {
		t.Fatalf("pots = %+v", pots)
	}
}

func TestSettleSideLayerSingleEligible(t *testing.T) {
	t.Parallel()
	seats := committedSeats([]int{300, 700}, []Status{AllIn, AllIn})
	calls := 0
	eval := func(hole, board []poker.Card) poker.HandRank {
		calls++
		if hole[0].String() == "2c" {
			return 10
		}
		return 20
	}
	st, err := Settle(seats, poker.MustParseCards("Ks Qd 9h 5c 2h"), 1, eval)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Fatalf("evaluator called %d times, want 2", calls)
	}
	if len(st.Pots) != 2 {
		t.Fatalf("got %d pots", len(st.Pots))
	}
	if st.Pots[0].Amount != 600 || st.Pots[1].Amount != 400 {
		t.Fatalf("pot amounts %d / %d", st.Pots[0].Amount, st.Pots[1].Amount)
	}
	if st.Payouts[0] != 600 || st.Payouts[1] != 400 {
		t.Fatalf("payouts = %v", st.Payouts)
	}
	if st.Pots[1].Rank != 0 {
		t.Fatal("uncontested side layer should not be ranked")
	}
	if st.Total() != 1000 {
		t.Fatalf("total = %d", st.Total())
	}
}

func TestSettleOddChipGoesClockwiseFromDealer(t *testing.T) {
	t.Parallel()
	seats := committedSeats([]int{150, 1, 150}, []Status{Active, Folded, Active})
	st, err := Settle(seats, nil, 0, constEval)
	if err != nil {
		t.Fatal(err)
	}
	if st.Payouts[2] != 151 || st.Payouts[0] != 150 {
		t.Fatalf("payouts = %v, want seat2 151 seat0 150", st.Payouts)
	}

	// with the button on seat 2 the odd chip goes to seat 0
	st, err = Settle(seats, nil, 2, constEval)
	if err != nil {
		t.Fatal(err)
	}
	if st.Payouts[0] != 151 || st.Payouts[2] != 150 {
		t.Fatalf("payouts = %v, want seat0 151 seat2 150", st.Payouts)
	}
}

func TestSettleSoleSurvivorSkipsEvaluation(t *testing.T) {
	t.Parallel()
	seats := committedSeats([]int{200, 600, 10}, []Status{Folded, Active, Folded})
	eval := func(hole, board []poker.Card) poker.HandRank {
		t.Fatal("evaluator should not run")
		return 0
	}
	st, err := Settle(seats, nil, 0, eval)
	if err != nil {
		t.Fatal(err)
	}
	if st.Payouts[1] != 810 || st.Showdown {
		t.Fatalf("settlement = %+v", st)
	}
}

func TestSettleThreeWaySplit(t *testing.T) {
	t.Parallel()
	seats := committedSeats([]int{100, 100, 100, 100}, []Status{Active, Active, Active, Folded})
	st, err := Settle(seats, nil, 3, constEval)
	if err != nil {
		t.Fatal(err)
	}
	// 400 / 3 = 133 rem 1, first clockwise from seat 3 is seat 0
	if st.Payouts[0] != 134 || st.Payouts[1] != 133 || st.Payouts[2] != 133 {
		t.Fatalf("payouts = %v", st.Payouts)
	}
}

func TestBuildPotsNoContenders(t *testing.T) {
	t.Parallel()
	seats := committedSeats([]int{100, 100}, []Status{Folded, Folded})
	if _, err := BuildPots(seats); !errors.Is(err, ErrNoContenders) {
		t.Fatalf("expected ErrNoContenders, got %v", err)
	}
}
