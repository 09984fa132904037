package game

import (
	"fmt"
	"slices"

	"github.com/lox/holdem-engine/poker"
)

// Pot is one layer of the pot and the seats that can win it.
type Pot struct {
	Amount   int
	Eligible []int
}

// PotResult is a settled pot layer.
type PotResult struct {
	Pot
	Winners []int
	Shares  map[int]int
	Rank    poker.HandRank // winning rank, zero when uncontested
}

// Settlement is the outcome of distributing every pot layer.
type Settlement struct {
	Pots     []PotResult
	Payouts  map[int]int
	Ranks    map[int]poker.HandRank // seats that were evaluated
	Showdown bool
}

// Total returns the chips paid out.
func (s *Settlement) Total() int {
	total := 0
	for _, v := range s.Payouts {
		total += v
	}
	return total
}

// BuildPots layers the chips committed this hand by the distinct totals of
// seats still in the hand. Each layer is eligible to the seats that reached
// it. Folded chips above the highest live total go to the top layer.
func BuildPots(seats []Seat) ([]Pot, error) {
	var levels []int
	committed := 0
	for i := range seats {
		s := &seats[i]
		committed += s.TotalBet
		if s.InHand() && s.TotalBet > 0 && !slices.Contains(levels, s.TotalBet) {
			levels = append(levels, s.TotalBet)
		}
	}
	if committed == 0 {
		return nil, nil
	}
	slices.Sort(levels)

	if len(levels) == 0 {
		eligible := inHandSeats(seats)
		if len(eligible) == 0 {
			return nil, fmt.Errorf("%d chips committed: %w", committed, ErrNoContenders)
		}
		return []Pot{{Amount: committed, Eligible: eligible}}, nil
	}

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		p := Pot{}
		for i := range seats {
			s := &seats[i]
			p.Amount += min(s.TotalBet, level) - min(s.TotalBet, prev)
			if s.InHand() && s.TotalBet >= level {
				p.Eligible = append(p.Eligible, i)
			}
		}
		pots = append(pots, p)
		prev = level
	}
	for i := range seats {
		if over := seats[i].TotalBet - prev; over > 0 {
			pots[len(pots)-1].Amount += over
		}
	}
	return pots, nil
}

func inHandSeats(seats []Seat) []int {
	var out []int
	for i := range seats {
		if seats[i].InHand() {
			out = append(out, i)
		}
	}
	return out
}

// clockwise sorts seat indices starting from the seat after dealer.
func clockwise(seats []int, dealer, n int) {
	dist := func(i int) int { return ((i-dealer-1)%n + n) % n }
	slices.SortFunc(seats, func(a, b int) int { return dist(a) - dist(b) })
}

// Settle distributes the hand's chips. A sole remaining seat takes
// everything unevaluated. Otherwise each layer goes to its best eligible
// hand; ties split evenly and the odd chips go to the first tied seat
// clockwise from the dealer.
func Settle(seats []Seat, board []poker.Card, dealer int, eval Evaluator) (*Settlement, error) {
	st := &Settlement{Payouts: map[int]int{}, Ranks: map[int]poker.HandRank{}}

	live := inHandSeats(seats)
	if len(live) == 1 {
		total := 0
		for i := range seats {
			total += seats[i].TotalBet
		}
		w := live[0]
		st.Payouts[w] = total
		st.Pots = []PotResult{{
			Pot:     Pot{Amount: total, Eligible: live},
			Winners: live,
			Shares:  map[int]int{w: total},
		}}
		return st, nil
	}

	pots, err := BuildPots(seats)
	if err != nil {
		return nil, err
	}

	rank := func(i int) poker.HandRank {
		if r, ok := st.Ranks[i]; ok {
			return r
		}
		r := eval(seats[i].Hole, board)
		st.Ranks[i] = r
		return r
	}

	for _, p := range pots {
		if len(p.Eligible) == 0 {
			return nil, fmt.Errorf("pot of %d: %w", p.Amount, ErrNoContenders)
		}
		res := PotResult{Pot: p, Shares: map[int]int{}}
		if len(p.Eligible) == 1 {
			res.Winners = []int{p.Eligible[0]}
		} else {
			st.Showdown = true
			best := poker.WorstRank
			for _, i := range p.Eligible {
				r := rank(i)
				switch {
				case r.Better(best):
					best = r
					res.Winners = []int{i}
				case r == best:
					res.Winners = append(res.Winners, i)
				}
			}
			res.Rank = best
		}
		clockwise(res.Winners, dealer, len(seats))

		share := p.Amount / len(res.Winners)
		odd := p.Amount % len(res.Winners)
		for k, w := range res.Winners {
			amount := share
			if k == 0 {
				amount += odd
			}
			res.Shares[w] = amount
			st.Payouts[w] += amount
		}
		st.Pots = append(st.Pots, res)
	}
	return st, nil
}
