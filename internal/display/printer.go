package display

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

// Printer is a game.Observer that writes a running commentary of each
// hand. Only the seats in reveal have their hole cards shown when dealt;
// everyone else's appear at showdown.
type Printer struct {
	w      io.Writer
	st     Styles
	reveal map[int]bool

	names map[int]string
	hole  map[int][]poker.Card
}

// NewPrinter creates a printer that shows the hole cards of reveal seats.
func NewPrinter(w io.Writer, st Styles, reveal ...int) *Printer {
	p := &Printer{w: w, st: st, reveal: map[int]bool{}}
	for _, seat := range reveal {
		p.reveal[seat] = true
	}
	return p
}

func (p *Printer) printf(style func(...string) string, format string, args ...any) {
	fmt.Fprintln(p.w, style(fmt.Sprintf(format, args...)))
}

// Name returns the display name for a seat in the current hand.
func (p *Printer) Name(seat int) string {
	if name, ok := p.names[seat]; ok {
		return name
	}
	return fmt.Sprintf("seat %d", seat)
}

func (p *Printer) OnEvent(e game.Event) {
	switch ev := e.(type) {
	case game.HandStarted:
		p.started(ev)
	case game.BlindPosted:
		kind := "small"
		if ev.Big {
			kind = "big"
		}
		p.printf(p.st.Dim.Render, "%s: posts %s blind %d", p.Name(ev.Seat), kind, ev.Amount)
	case game.HoleCardsDealt:
		p.hole[ev.Seat] = ev.Cards
		if p.reveal[ev.Seat] {
			fmt.Fprintf(p.w, "Dealt to %s: %s\n", p.Name(ev.Seat), p.st.Cards(ev.Cards))
		}
	case game.ActionTaken:
		p.printf(p.st.Action.Render, "%s", DescribeAction(p.Name(ev.Seat), ev))
	case game.StreetDealt:
		label := p.st.Street.Render("*** " + strings.ToUpper(ev.Street.String()) + " ***")
		fmt.Fprintf(p.w, "%s [%s]\n", label, p.st.Cards(ev.Board))
	case game.HandEnded:
		p.ended(ev.Result)
	}
}

func (p *Printer) started(ev game.HandStarted) {
	p.names = make(map[int]string, len(ev.Seats))
	p.hole = map[int][]poker.Card{}

	fmt.Fprintln(p.w)
	header := fmt.Sprintf("Hand %s • %d players • %d/%d", ev.HandID, len(ev.Seats), ev.Stakes[0], ev.Stakes[1])
	fmt.Fprintln(p.w, p.st.Header.Render(header))
	for _, s := range ev.Seats {
		name := s.Player.Name
		if name == "" {
			name = s.Player.ID
		}
		p.names[s.Index] = name
		pos := ""
		if s.Position != game.NoPosition {
			pos = " (" + s.Position.String() + ")"
		}
		p.printf(p.st.Info.Render, "Seat %d: %s%s - %d", s.Index, name, pos, s.Stack)
	}
}

func (p *Printer) ended(res *game.Result) {
	if res == nil {
		return
	}
	for _, seat := range slices.Sorted(maps.Keys(res.Shown)) {
		cards := res.Shown[seat]
		line := fmt.Sprintf("%s shows %s", p.Name(seat), p.st.Cards(cards))
		if desc, err := poker.Describe(append(slices.Clone(cards), res.Board...)); err == nil {
			line += " (" + desc + ")"
		}
		fmt.Fprintln(p.w, line)
	}
	for i, pot := range res.Pots {
		label := "the pot"
		if len(res.Pots) > 1 {
			label = "main pot"
			if i > 0 {
				label = fmt.Sprintf("side pot %d", i)
			}
		}
		for _, seat := range pot.Winners {
			p.printf(p.st.Win.Render, "%s wins %d from %s", p.Name(seat), pot.Shares[seat], label)
		}
	}
}

// DescribeAction renders an action the way a hand history reads.
func DescribeAction(name string, ev game.ActionTaken) string {
	a := ev.Applied
	var s string
	switch ev.Action.Type {
	case game.Fold:
		s = name + ": folds"
	case game.Check:
		s = name + ": checks"
	case game.Call:
		s = fmt.Sprintf("%s: calls %d", name, a.Chips)
	case game.Bet:
		s = fmt.Sprintf("%s: bets %d", name, a.Total)
	case game.Raise:
		s = fmt.Sprintf("%s: raises to %d", name, a.Total)
	case game.AllIn:
		s = fmt.Sprintf("%s: goes all-in for %d", name, a.Total)
	default:
		s = fmt.Sprintf("%s: %s", name, ev.Action)
	}
	if a.AllIn && ev.Action.Type != game.AllIn {
		s += " and is all-in"
	}
	if ev.Forced {
		s += " (forced)"
	}
	return s
}
