package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("hand-%d", n)
	}
}

// newTestTable seats one player per non-zero stack, leaving zero stacks empty.
func newTestTable(t *testing.T, stacks []int, sb, bb int, opts ...Option) *Table {
	t.Helper()
	base := []Option{WithLogger(quietLogger()), WithRNG(randutil.New(1)), WithHandIDs(seqIDs())}
	tbl, err := NewTable(Config{Seats: len(stacks), SmallBlind: sb, BigBlind: bb}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for i, s := range stacks {
		if s == 0 {
			continue
		}
		if err := tbl.Sit(i, Player{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Player%d", i)}, s); err != nil {
			t.Fatalf("Sit(%d): %v", i, err)
		}
	}
	return tbl
}

// constEval makes every hand tie.
func constEval(hole, board []poker.Card) poker.HandRank { return 100 }

// rankByCard ranks hands by the first hole card using ranks.
func rankByCard(ranks map[string]poker.HandRank) Evaluator {
	return func(hole, board []poker.Card) poker.HandRank {
		if r, ok := ranks[hole[0].String()]; ok {
			return r
		}
		return poker.WorstRank - 1
	}
}

// stackedDeck pads the given cards with the rest of the deck in a fixed order.
func stackedDeck(first ...string) DeckFactory {
	cards := poker.MustParseCards(joinCards(first))
	used := poker.NewHand(cards...)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			c := poker.NewCard(rank, suit)
			if !used.HasCard(c) {
				cards = append(cards, c)
			}
		}
	}
	return StackedDeck(cards)
}

func joinCards(parts []string) string {
	out := ""
	for _, p := range parts {
		out += " " + p
	}
	return out
}

func mustStart(t *testing.T, tbl *Table, opts ...Option) *Hand {
	t.Helper()
	h, err := tbl.StartHand(opts...)
	if err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	return h
}

func mustAct(t *testing.T, h *Hand, seat int, a Action) {
	t.Helper()
	if err := h.Act(seat, a); err != nil {
		t.Fatalf("seat %d %s: %v", seat, a, err)
	}
}

func hasAction(legal []LegalAction, at ActionType) bool {
	_, ok := findLegal(legal, at)
	return ok
}

// randomLegal picks a uniformly random legal action and amount.
func randomLegal(rng *rand.Rand, legal []LegalAction) Action {
	la := legal[rng.IntN(len(legal))]
	a := Action{Type: la.Type}
	if la.Type == Bet || la.Type == Raise {
		a.Amount = la.Min
		if la.Max > la.Min {
			a.Amount += rng.IntN(la.Max - la.Min + 1)
		}
	}
	return a
}
