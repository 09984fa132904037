package game

import (
	"testing"

	"github.com/lox/holdem-engine/internal/randutil"
)

// TestRandomPlayInvariants plays random legal actions on random tables and
// checks chip accounting and the reopening rules after every action.
func TestRandomPlayInvariants(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 300; seed++ {
		rng := randutil.New(seed)
		n := 2 + rng.IntN(MaxSeats-1)
		stacks := make([]int, n)
		for i := range stacks {
			if rng.IntN(5) > 0 {
				stacks[i] = 1 + rng.IntN(2000)
			}
		}
		sb := 1 + rng.IntN(20)

		var last ActionTaken
		tbl := newTestTable(t, stacks, sb, sb*2,
			WithRNG(randutil.New(seed)),
			WithObserver(ObserverFunc(func(e Event) {
				if at, ok := e.(ActionTaken); ok {
					last = at
				}
			})),
		)

		for hand := 0; hand < 5; hand++ {
			total := tbl.TotalChips()
			h, err := tbl.StartHand()
			if err != nil {
				break
			}
			if got := tbl.TotalChips(); got != total {
				t.Fatalf("seed %d: blinds changed chips %d -> %d", seed, total, got)
			}

			for steps := 0; h.Status() == InProgress; steps++ {
				if steps > 500 {
					t.Fatalf("seed %d: hand did not finish", seed)
				}
				seat := h.ToAct()
				legal := h.LegalActions(seat)
				if len(legal) == 0 {
					t.Fatalf("seed %d: seat %d to act with no legal actions", seed, seat)
				}
				before := tbl.Seats()
				street := h.Street()

				a := randomLegal(rng, legal)
				if err := h.Act(seat, a); err != nil {
					t.Fatalf("seed %d: legal action %s rejected: %v", seed, a, err)
				}
				if got := tbl.TotalChips(); got != total {
					t.Fatalf("seed %d: chips %d -> %d after %s", seed, total, got, a)
				}

				after := tbl.Seats()
				sameStreet := h.Status() == InProgress && h.Street() == street
				if sameStreet {
					if after[seat].Stack+after[seat].Bet != before[seat].Stack+before[seat].Bet {
						t.Fatalf("seed %d: seat %d stack+bet changed within street", seed, seat)
					}
				}
				for j := range after {
					if j == seat {
						continue
					}
					if last.Applied.Reopened && after[j].Status == Active && after[j].Acted {
						t.Fatalf("seed %d: seat %d still marked acted after a full raise", seed, j)
					}
					if !last.Applied.Reopened && sameStreet && after[j].Acted != before[j].Acted {
						t.Fatalf("seed %d: seat %d acted flag changed by %s without a full raise", seed, j, a)
					}
				}
			}

			res := h.Result()
			paid := 0
			for _, v := range res.Payouts {
				paid += v
			}
			if paid != res.Pot {
				t.Fatalf("seed %d: paid %d of pot %d", seed, paid, res.Pot)
			}
			for _, s := range tbl.Seats() {
				if s.Stack < 0 {
					t.Fatalf("seed %d: seat %d negative stack", seed, s.Index)
				}
				if s.Occupied() && s.Stack == 0 && s.Status != Out {
					t.Fatalf("seed %d: broke seat %d not out", seed, s.Index)
				}
			}
		}
	}
}
