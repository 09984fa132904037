package phh

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdem-engine/internal/game"
)

// Recorder is a game.Observer that turns hand events into hand histories
// and hands them to a Sink when each hand ends.
type Recorder struct {
	table  string
	sink   Sink
	clock  quartz.Clock
	logger *log.Logger

	cur    *HandHistory
	player map[int]int // seat -> 1-based player number
	toCall int
	hands  int
	err    error
}

// NewRecorder creates a recorder for the named table.
func NewRecorder(table string, sink Sink, clock quartz.Clock, logger *log.Logger) *Recorder {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{table: table, sink: sink, clock: clock, logger: logger.WithPrefix("phh")}
}

// Hands counts hands written successfully.
func (r *Recorder) Hands() int { return r.hands }

// Err returns the first write failure, if any.
func (r *Recorder) Err() error { return r.err }

func (r *Recorder) OnEvent(e game.Event) {
	switch ev := e.(type) {
	case game.HandStarted:
		r.start(ev)
	case game.BlindPosted:
		if p, ok := r.playerIndex(ev.Seat); ok {
			r.cur.BlindsOrStraddles[p] += ev.Amount
			r.toCall = max(r.toCall, ev.Amount)
		}
	case game.HoleCardsDealt:
		if p, ok := r.player[ev.Seat]; ok && r.cur != nil {
			r.add("d dh p%d %s", p, FormatCards(ev.Cards))
		}
	case game.ActionTaken:
		if p, ok := r.player[ev.Seat]; ok && r.cur != nil {
			total := ev.Applied.Total
			r.cur.Actions = append(r.cur.Actions, FormatAction(p, ev.Action.Type, total, total > r.toCall))
			r.toCall = max(r.toCall, total)
		}
	case game.StreetDealt:
		if r.cur != nil {
			r.add("d db %s", FormatCards(ev.Cards))
			r.toCall = 0
		}
	case game.HandEnded:
		r.finish(ev.Result)
	}
}

func (r *Recorder) add(format string, args ...any) {
	r.cur.Actions = append(r.cur.Actions, fmt.Sprintf(format, args...))
}

func (r *Recorder) playerIndex(seat int) (int, bool) {
	if r.cur == nil {
		return 0, false
	}
	p, ok := r.player[seat]
	return p - 1, ok
}

func (r *Recorder) start(ev game.HandStarted) {
	n := ev.SeatCount
	dist := func(i int) int { return ((i-ev.Dealer-1)%n + n) % n }
	seats := slices.Clone(ev.Seats)
	slices.SortFunc(seats, func(a, b game.SeatInfo) int { return dist(a.Index) - dist(b.Index) })

	hh := &HandHistory{
		Variant:           VariantNoLimitHoldem,
		Table:             r.table,
		SeatCount:         ev.SeatCount,
		Antes:             make([]int, len(seats)),
		BlindsOrStraddles: make([]int, len(seats)),
		MinBet:            ev.Stakes[1],
		HandID:            ev.HandID,
	}
	r.player = map[int]int{}
	for i, s := range seats {
		r.player[s.Index] = i + 1
		hh.Seats = append(hh.Seats, s.Index+1)
		hh.StartingStacks = append(hh.StartingStacks, s.Stack)
		name := s.Player.Name
		if name == "" {
			name = s.Player.ID
		}
		hh.Players = append(hh.Players, name)
	}
	r.cur = hh
	r.toCall = 0
}

func (r *Recorder) finish(res *game.Result) {
	hh := r.cur
	if hh == nil || res == nil {
		return
	}
	r.cur = nil

	order := make([]int, len(hh.Seats))
	for seat, p := range r.player {
		order[p-1] = seat
	}
	for _, seat := range order {
		if cards, ok := res.Shown[seat]; ok {
			hh.Actions = append(hh.Actions, fmt.Sprintf("p%d sm %s", r.player[seat], FormatCards(cards)))
		}
	}
	for _, seat := range order {
		hh.FinishingStacks = append(hh.FinishingStacks, res.EndStacks[seat])
		hh.Winnings = append(hh.Winnings, res.Payouts[seat])
	}

	now := r.clock.Now().UTC()
	hh.Time = now.Format(time.TimeOnly)
	hh.Day, hh.Month, hh.Year = now.Day(), int(now.Month()), now.Year()

	if err := r.sink.WriteHand(hh); err != nil {
		r.logger.Error("Failed to write hand history", "hand", hh.HandID, "error", err)
		if r.err == nil {
			r.err = err
		}
		return
	}
	r.hands++
}
