package game

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/holdem-engine/poker"
)

// MaxSeats is the largest table supported.
const MaxSeats = 10

// Config holds the fixed parameters of a table.
type Config struct {
	Seats      int
	SmallBlind int
	BigBlind   int
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Seats < 2 || c.Seats > MaxSeats {
		return fmt.Errorf("seats must be between 2 and %d, got %d", MaxSeats, c.Seats)
	}
	if c.SmallBlind <= 0 {
		return errors.New("small blind must be positive")
	}
	if c.BigBlind < c.SmallBlind {
		return fmt.Errorf("big blind %d is below small blind %d", c.BigBlind, c.SmallBlind)
	}
	return nil
}

// Table owns the seats, stacks and button across hands.
type Table struct {
	cfg         Config
	seats       []Seat
	dealer      int
	pot         int
	board       []poker.Card
	hand        *Hand
	handsPlayed int
	opts        options
}

// NewTable creates an empty table. Options given here apply to every hand.
func NewTable(cfg Config, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Table{
		cfg:    cfg,
		seats:  make([]Seat, cfg.Seats),
		dealer: -1,
		opts:   defaultOptions(),
	}
	for i := range t.seats {
		t.seats[i] = Seat{Index: i, Status: Out}
	}
	for _, opt := range opts {
		opt(&t.opts)
	}
	return t, nil
}

// Config returns the table configuration.
func (t *Table) Config() Config { return t.cfg }

func (t *Table) handRunning() bool {
	return t.hand != nil && t.hand.status == InProgress
}

func (t *Table) checkSeat(index int) error {
	if index < 0 || index >= len(t.seats) {
		return fmt.Errorf("seat %d: %w", index, ErrInvalidSeat)
	}
	return nil
}

// Sit places a player with a stack in an empty seat between hands.
func (t *Table) Sit(index int, p Player, stack int) error {
	if err := t.checkSeat(index); err != nil {
		return err
	}
	if t.handRunning() {
		return fmt.Errorf("sit at seat %d: %w", index, ErrHandInProgress)
	}
	if stack < 0 {
		return fmt.Errorf("negative stack %d", stack)
	}
	if t.seats[index].Occupied() {
		return fmt.Errorf("seat %d: %w", index, ErrSeatOccupied)
	}
	for i := range t.seats {
		if t.seats[i].Occupied() && p.ID != "" && t.seats[i].Player.ID == p.ID {
			return fmt.Errorf("player %s already at seat %d: %w", p.ID, i, ErrSeatOccupied)
		}
	}
	player := p
	t.seats[index] = Seat{Index: index, Player: &player, Stack: stack, Status: Out}
	if stack > 0 {
		t.seats[index].Status = Active
	}
	return nil
}

// Stand removes the player from a seat between hands and returns their stack.
func (t *Table) Stand(index int) (int, error) {
	if err := t.checkSeat(index); err != nil {
		return 0, err
	}
	if t.handRunning() {
		return 0, fmt.Errorf("stand from seat %d: %w", index, ErrHandInProgress)
	}
	if !t.seats[index].Occupied() {
		return 0, fmt.Errorf("seat %d: %w", index, ErrSeatEmpty)
	}
	stack := t.seats[index].Stack
	t.seats[index] = Seat{Index: index, Status: Out}
	return stack, nil
}

// Seats returns a copy of every seat.
func (t *Table) Seats() []Seat {
	out := make([]Seat, len(t.seats))
	for i, s := range t.seats {
		s.Hole = slices.Clone(s.Hole)
		out[i] = s
	}
	return out
}

// Seat returns a copy of one seat.
func (t *Table) Seat(index int) (Seat, bool) {
	if t.checkSeat(index) != nil {
		return Seat{}, false
	}
	s := t.seats[index]
	s.Hole = slices.Clone(s.Hole)
	return s, true
}

// Pot returns the chips committed in the current hand.
func (t *Table) Pot() int { return t.pot }

// Board returns the community cards of the current or last hand.
func (t *Table) Board() []poker.Card { return slices.Clone(t.board) }

// Dealer returns the button seat, or -1 before the first hand.
func (t *Table) Dealer() int { return t.dealer }

// HandsPlayed counts completed hands.
func (t *Table) HandsPlayed() int { return t.handsPlayed }

// Hand returns the current or most recent hand, or nil.
func (t *Table) Hand() *Hand { return t.hand }

// TotalChips returns every stack plus the pot. It only changes when
// players sit or stand.
func (t *Table) TotalChips() int {
	total := t.pot
	for i := range t.seats {
		total += t.seats[i].Stack
	}
	return total
}

// FundedSeats counts occupied seats with chips.
func (t *Table) FundedSeats() int {
	return countFunded(t.seats)
}

// Status reports Waiting when a hand cannot start, InProgress while one is
// running and HandComplete once the last hand has been settled.
func (t *Table) Status() HandStatus {
	switch {
	case t.handRunning():
		return InProgress
	case t.FundedSeats() < 2:
		return Waiting
	case t.hand != nil:
		return HandComplete
	}
	return Waiting
}

// StartHand rotates the button, posts blinds and deals a new hand. It fails
// with ErrInsufficientPlayers when fewer than two seats have chips.
func (t *Table) StartHand(opts ...Option) (*Hand, error) {
	if t.handRunning() {
		return nil, ErrHandInProgress
	}
	o := t.opts
	o.observers = slices.Clone(o.observers)
	for _, opt := range opts {
		opt(&o)
	}
	// a table-wide button only places the first hand
	t.opts.button = -1

	if n := t.FundedSeats(); n < 2 {
		return nil, fmt.Errorf("start hand with %d funded seats: %w", n, ErrInsufficientPlayers)
	}

	var (
		pos Positions
		err error
	)
	if o.button >= 0 {
		pos, err = positionsFrom(t.seats, o.button)
	} else {
		pos, err = AssignPositions(t.seats, t.dealer, o.rng)
	}
	if err != nil {
		return nil, err
	}

	for i := range t.seats {
		t.seats[i].resetForHand()
		t.seats[i].Position = pos.Label(i)
	}
	prevHand, prevDealer := t.hand, t.dealer
	t.pot = 0
	t.board = nil
	t.dealer = pos.Dealer

	h := newHand(t, o, pos)
	t.hand = h
	if err := h.start(); err != nil {
		// nothing has been posted when the deck is short
		if t.pot == 0 {
			t.hand, t.dealer = prevHand, prevDealer
		}
		return nil, err
	}
	return h, nil
}
