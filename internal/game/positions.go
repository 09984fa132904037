package game

import (
	"fmt"
	"math/rand/v2"
)

// Positions records who holds the button and blinds for one hand and the
// label given to every funded seat.
type Positions struct {
	Dealer     int
	SmallBlind int
	BigBlind   int
	Labels     map[int]Position
}

// Label returns the position of seat, or NoPosition.
func (p Positions) Label(seat int) Position {
	return p.Labels[seat]
}

// labels for seats between the big blind and the button, by count
var middleLabels = [][]Position{
	1: {UTG},
	2: {UTG, Cutoff},
	3: {UTG, Hijack, Cutoff},
	4: {UTG, Lojack, Hijack, Cutoff},
	5: {UTG, UTG1, Lojack, Hijack, Cutoff},
	6: {UTG, UTG1, UTG2, Lojack, Hijack, Cutoff},
	7: {UTG, UTG1, UTG2, MiddlePosition, Lojack, Hijack, Cutoff},
}

func funded(s *Seat) bool {
	return s.Occupied() && s.Stack > 0
}

// nextFunded returns the first funded seat strictly after from, wrapping.
func nextFunded(seats []Seat, from int) int {
	n := len(seats)
	for step := 1; step <= n; step++ {
		i := ((from+step)%n + n) % n
		if funded(&seats[i]) {
			return i
		}
	}
	return -1
}

func countFunded(seats []Seat) int {
	count := 0
	for i := range seats {
		if funded(&seats[i]) {
			count++
		}
	}
	return count
}

// AssignPositions moves the button to the next funded seat after prevDealer
// (a random funded seat when prevDealer is negative) and labels the hand.
func AssignPositions(seats []Seat, prevDealer int, rng *rand.Rand) (Positions, error) {
	n := countFunded(seats)
	if n < 2 {
		return Positions{}, fmt.Errorf("%d funded seats: %w", n, ErrInsufficientPlayers)
	}

	var dealer int
	if prevDealer < 0 {
		if rng == nil {
			panic("game: AssignPositions needs an rng to pick the first button")
		}
		pick := rng.IntN(n)
		dealer = nextFunded(seats, -1)
		for ; pick > 0; pick-- {
			dealer = nextFunded(seats, dealer)
		}
	} else {
		dealer = nextFunded(seats, prevDealer)
	}
	return positionsFrom(seats, dealer)
}

// positionsFrom labels a hand whose button sits on dealer, which must be funded.
func positionsFrom(seats []Seat, dealer int) (Positions, error) {
	if dealer < 0 || dealer >= len(seats) || !funded(&seats[dealer]) {
		return Positions{}, fmt.Errorf("button seat %d is not funded: %w", dealer, ErrInsufficientPlayers)
	}
	n := countFunded(seats)
	if n < 2 {
		return Positions{}, fmt.Errorf("%d funded seats: %w", n, ErrInsufficientPlayers)
	}

	p := Positions{Dealer: dealer, Labels: map[int]Position{dealer: Button}}
	if n == 2 {
		// heads-up: the button posts the small blind
		p.SmallBlind = dealer
		p.BigBlind = nextFunded(seats, dealer)
		p.Labels[p.BigBlind] = BigBlind
		return p, nil
	}

	p.SmallBlind = nextFunded(seats, dealer)
	p.BigBlind = nextFunded(seats, p.SmallBlind)
	p.Labels[p.SmallBlind] = SmallBlind
	p.Labels[p.BigBlind] = BigBlind

	labels := middleLabels[n-3]
	seat := p.BigBlind
	for _, label := range labels {
		seat = nextFunded(seats, seat)
		p.Labels[seat] = label
	}
	return p, nil
}
