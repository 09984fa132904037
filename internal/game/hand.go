package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/poker"
)

// HandStatus is the lifecycle state of a hand.
type HandStatus int

const (
	Waiting HandStatus = iota
	InProgress
	HandComplete
)

func (s HandStatus) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case InProgress:
		return "in_progress"
	case HandComplete:
		return "hand_complete"
	}
	return "unknown"
}

// Result summarises a finished hand.
type Result struct {
	HandID      string
	Dealer      int
	Board       []poker.Card
	Pot         int
	FinalStreet Street
	Showdown    bool
	Pots        []PotResult
	Payouts     map[int]int
	Ranks       map[int]poker.HandRank
	Shown       map[int][]poker.Card
	StartStacks map[int]int
	EndStacks   map[int]int
}

// Net returns the chips seat won or lost over the hand.
func (r *Result) Net(seat int) int {
	return r.EndStacks[seat] - r.StartStacks[seat]
}

// Winners returns every seat that received chips, in seat order.
func (r *Result) Winners() []int {
	return slices.Sorted(maps.Keys(r.Payouts))
}

// Hand is one deal at a table, from blinds to settlement.
type Hand struct {
	id          string
	table       *Table
	opts        options
	log         *log.Logger
	deck        *poker.Deck
	betting     Betting
	positions   Positions
	status      HandStatus
	startStacks map[int]int
	result      *Result
}

func newHand(t *Table, o options, pos Positions) *Hand {
	id := o.newID()
	return &Hand{
		id:        id,
		table:     t,
		opts:      o,
		log:       o.logger.With("hand", id),
		positions: pos,
		status:    InProgress,
		betting:   Betting{BigBlind: t.cfg.BigBlind, ToAct: -1, LastRaiser: -1},
	}
}

func (h *Hand) ID() string { return h.id }
func (h *Hand) Status() HandStatus { return h.status }
func (h *Hand) Street() Street { return h.betting.Street }
func (h *Hand) Positions() Positions { return h.positions }
func (h *Hand) Betting() Betting { return h.betting }
func (h *Hand) Board() []poker.Card { return slices.Clone(h.table.board) }
func (h *Hand) Pot() int { return h.table.pot }
func (h *Hand) Result() *Result { return h.result }
func (h *Hand) StartStacks() map[int]int { return maps.Clone(h.startStacks) }

// ToAct returns the seat to act, or -1 when nobody is.
func (h *Hand) ToAct() int {
	if h.status != InProgress {
		return -1
	}
	return h.betting.ToAct
}

// LegalActions returns the actions available to seat right now.
func (h *Hand) LegalActions(seat int) []LegalAction {
	if h.status != InProgress {
		return nil
	}
	return h.betting.LegalActions(h.table.seats, seat)
}

func (h *Hand) emit(e Event) {
	for _, obs := range h.opts.observers {
		obs.OnEvent(e)
	}
}

func (h *Hand) start() error {
	t := h.table
	seats := t.seats

	h.deck = h.opts.newDeck(h.opts.rng)
	if need, have := 2*countDealt(seats), h.deck.Remaining(); have < need {
		return fmt.Errorf("deal hole cards: need %d cards, deck has %d: %w", need, have, ErrDeckEmpty)
	}

	h.startStacks = map[int]int{}
	info := make([]SeatInfo, 0, len(seats))
	for i := range seats {
		if seats[i].Status == Out {
			continue
		}
		h.startStacks[i] = seats[i].Stack
		info = append(info, SeatInfo{Index: i, Player: *seats[i].Player, Stack: seats[i].Stack, Position: seats[i].Position})
	}
	h.emit(HandStarted{
		HandID:     h.id,
		SeatCount:  len(seats),
		Dealer:     h.positions.Dealer,
		SmallBlind: h.positions.SmallBlind,
		BigBlind:   h.positions.BigBlind,
		Stakes:     [2]int{t.cfg.SmallBlind, t.cfg.BigBlind},
		Seats:      info,
	})
	h.log.Debug("hand started", "dealer", h.positions.Dealer, "players", len(info))

	h.betting.ResetStreet(Preflop, seats)
	h.postBlind(h.positions.SmallBlind, t.cfg.SmallBlind, false)
	h.postBlind(h.positions.BigBlind, t.cfg.BigBlind, true)
	h.betting.AmountToCall = max(seats[h.positions.SmallBlind].Bet, seats[h.positions.BigBlind].Bet)
	h.betting.MinRaise = t.cfg.BigBlind
	h.betting.LastRaiser = h.positions.BigBlind

	if err := h.dealHoleCards(); err != nil {
		return err
	}

	h.betting.ToAct = h.betting.NextActor(seats, h.positions.BigBlind)
	if h.betting.Closed(seats) {
		h.betting.ToAct = -1
		return h.advance()
	}
	return nil
}

func (h *Hand) postBlind(seat, amount int, big bool) {
	posted := h.table.seats[seat].commit(amount)
	h.table.pot += posted
	h.emit(BlindPosted{HandID: h.id, Seat: seat, Amount: posted, Big: big})
	h.log.Debug("blind posted", "seat", seat, "amount", posted, "big", big)
}

func countDealt(seats []Seat) int {
	n := 0
	for i := range seats {
		if seats[i].Status != Out {
			n++
		}
	}
	return n
}

// dealHoleCards deals two passes starting left of the button.
func (h *Hand) dealHoleCards() error {
	seats := h.table.seats
	n := len(seats)
	var order []int
	for step := 1; step <= n; step++ {
		i := (h.positions.Dealer + step) % n
		if seats[i].Status != Out {
			order = append(order, i)
		}
	}
	for pass := 0; pass < 2; pass++ {
		for _, i := range order {
			c, err := h.deck.DrawOne()
			if err != nil {
				return fmt.Errorf("deal hole cards: %w", err)
			}
			seats[i].Hole = append(seats[i].Hole, c)
		}
	}
	for _, i := range order {
		h.emit(HoleCardsDealt{HandID: h.id, Seat: i, Cards: slices.Clone(seats[i].Hole)})
	}
	return nil
}

// Act applies an action for seat. Illegal actions return ErrIllegalAction
// and leave the hand untouched.
func (h *Hand) Act(seat int, a Action) error {
	if h.status != InProgress {
		return ErrHandComplete
	}
	street := h.betting.Street
	applied, err := h.betting.Apply(h.table.seats, seat, a)
	if err != nil {
		h.log.Debug("action rejected", "seat", seat, "action", a, "err", err)
		return err
	}
	h.table.pot += applied.Chips
	h.emit(ActionTaken{HandID: h.id, Seat: seat, Street: street, Action: a, Applied: applied, Pot: h.table.pot})
	h.log.Debug("action", "seat", seat, "street", street, "action", a.Type, "chips", applied.Chips, "total", applied.Total, "pot", h.table.pot)

	if h.betting.ToAct < 0 {
		return h.advance()
	}
	return nil
}

// ForceFold folds seat even when it is not its turn, for callers that have
// given up waiting on a player.
func (h *Hand) ForceFold(seat int) error {
	if h.status != InProgress {
		return ErrHandComplete
	}
	if seat == h.betting.ToAct {
		return h.Act(seat, Action{Type: Fold})
	}
	seats := h.table.seats
	if seat < 0 || seat >= len(seats) || seats[seat].Status != Active {
		return fmt.Errorf("seat %d cannot fold: %w", seat, ErrIllegalAction)
	}
	s := &seats[seat]
	s.Status = Folded
	s.Hole = nil
	s.Acted = true
	h.emit(ActionTaken{
		HandID:  h.id,
		Seat:    seat,
		Street:  h.betting.Street,
		Action:  Action{Type: Fold},
		Applied: Applied{Seat: seat, Type: Fold},
		Pot:     h.table.pot,
		Forced:  true,
	})
	h.log.Debug("forced fold", "seat", seat)

	if h.betting.Closed(seats) {
		h.betting.ToAct = -1
		return h.advance()
	}
	return nil
}

// advance deals further streets until one needs betting or the hand ends.
func (h *Hand) advance() error {
	seats := h.table.seats
	for {
		if len(inHandSeats(seats)) <= 1 || h.betting.Street >= River {
			return h.finish()
		}
		next := h.betting.Street + 1
		count := 1
		if next == Flop {
			count = 3
		}
		if err := h.deck.Burn(); err != nil {
			return fmt.Errorf("burn before %s: %w", next, err)
		}
		cards, err := h.deck.Draw(count)
		if err != nil {
			return fmt.Errorf("deal %s: %w", next, err)
		}
		h.table.board = append(h.table.board, cards...)
		h.betting.ResetStreet(next, seats)
		h.emit(StreetDealt{HandID: h.id, Street: next, Cards: cards, Board: slices.Clone(h.table.board)})
		h.log.Debug("street dealt", "street", next, "board", poker.FormatCards(h.table.board))

		if h.betting.Closed(seats) {
			continue
		}
		h.betting.ToAct = h.betting.NextActor(seats, h.positions.Dealer)
		return nil
	}
}

func (h *Hand) finish() error {
	t := h.table
	seats := t.seats
	final := h.betting.Street

	st, err := Settle(seats, t.board, h.positions.Dealer, h.opts.evaluate)
	if err != nil {
		return err
	}

	res := &Result{
		HandID:      h.id,
		Dealer:      h.positions.Dealer,
		Board:       slices.Clone(t.board),
		Pot:         t.pot,
		FinalStreet: final,
		Showdown:    st.Showdown,
		Pots:        st.Pots,
		Payouts:     st.Payouts,
		Ranks:       st.Ranks,
		Shown:       map[int][]poker.Card{},
		StartStacks: h.startStacks,
		EndStacks:   map[int]int{},
	}
	if st.Showdown {
		h.betting.Street = Showdown
		for _, i := range inHandSeats(seats) {
			res.Shown[i] = slices.Clone(seats[i].Hole)
		}
	}

	for seat, amount := range st.Payouts {
		seats[seat].Stack += amount
	}
	t.pot -= st.Total()
	for i := range seats {
		s := &seats[i]
		if _, ok := h.startStacks[i]; ok {
			res.EndStacks[i] = s.Stack
		}
		s.Bet = 0
		s.Acted = false
		if s.Occupied() && s.Stack == 0 {
			s.Status = Out
		}
	}

	h.betting.ToAct = -1
	h.status = HandComplete
	h.result = res
	t.handsPlayed++

	for i, p := range res.Pots {
		h.emit(PotAwarded{HandID: h.id, Pot: i, Amount: p.Amount, Winners: slices.Clone(p.Winners), Shares: maps.Clone(p.Shares)})
	}
	h.emit(HandEnded{HandID: h.id, Result: res})
	h.log.Debug("hand complete", "pot", res.Pot, "showdown", res.Showdown, "winners", res.Winners())

	if t.pot != 0 {
		return fmt.Errorf("hand %s left %d chips unassigned", h.id, t.pot)
	}
	return nil
}

// View returns what seat can see. Legal actions are set only when it is
// that seat's turn.
func (h *Hand) View(seat int) View {
	t := h.table
	v := View{
		HandID:       h.id,
		Seat:         seat,
		Street:       h.betting.Street,
		Board:        slices.Clone(t.board),
		Pot:          t.pot,
		AmountToCall: h.betting.AmountToCall,
		MinRaise:     h.betting.MinRaise,
		BigBlind:     t.cfg.BigBlind,
		Dealer:       h.positions.Dealer,
		Legal:        h.LegalActions(seat),
	}
	for i := range t.seats {
		s := &t.seats[i]
		if !s.Occupied() {
			continue
		}
		v.Seats = append(v.Seats, PublicSeat{
			Index:    i,
			Name:     s.name(),
			Stack:    s.Stack,
			Bet:      s.Bet,
			TotalBet: s.TotalBet,
			Status:   s.Status,
			Position: s.Position,
		})
	}
	if seat >= 0 && seat < len(t.seats) {
		s := &t.seats[seat]
		v.Hole = slices.Clone(s.Hole)
		v.Stack = s.Stack
		v.Bet = s.Bet
		v.Position = s.Position
		v.ToCall = min(max(h.betting.AmountToCall-s.Bet, 0), s.Stack)
	}
	return v
}
