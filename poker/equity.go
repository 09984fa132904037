package poker

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// EquityResult counts Monte Carlo outcomes for one hand.
type EquityResult struct {
	Wins    int     // samples won outright
	Ties    int     // samples split with at least one other hand
	Samples int     // samples played
	Share   float64 // pot shares won, a tie among k hands counting 1/k
}

// Equity is the expected share of the pot.
func (r EquityResult) Equity() float64 {
	if r.Samples == 0 {
		return 0
	}
	return r.Share / float64(r.Samples)
}

func (r *EquityResult) add(o EquityResult) {
	r.Wins += o.Wins
	r.Ties += o.Ties
	r.Samples += o.Samples
	r.Share += o.Share
}

// chunk is how many samples a parallel worker runs between context checks.
const chunk = 1024

// Equity estimates hole's pot share against a number of opponents holding
// random cards, dealing out the rest of the board each sample.
func Equity(hole, board []Card, opponents, samples int, rng *rand.Rand) (EquityResult, error) {
	if err := checkEquity(hole, board, opponents); err != nil {
		return EquityResult{}, err
	}
	return newSampler(hole, board, opponents).run(samples, rng), nil
}

// EquityParallel is Equity split across workers, each seeded from rng.
// workers <= 0 picks one per CPU, at most eight.
func EquityParallel(ctx context.Context, hole, board []Card, opponents, samples, workers int, rng *rand.Rand) (EquityResult, error) {
	if err := checkEquity(hole, board, opponents); err != nil {
		return EquityResult{}, err
	}
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}

	results := make([]EquityResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := samples / workers
		if w < samples%workers {
			n++
		}
		wrng := rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
		g.Go(func() error {
			s := newSampler(hole, board, opponents)
			for n > 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
				step := min(n, chunk)
				results[w].add(s.run(step, wrng))
				n -= step
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EquityResult{}, err
	}

	var total EquityResult
	for _, r := range results {
		total.add(r)
	}
	return total, nil
}

func checkEquity(hole, board []Card, opponents int) error {
	if len(hole) != 2 {
		return fmt.Errorf("need 2 hole cards, got %d", len(hole))
	}
	if opponents < 1 || opponents > 9 {
		return fmt.Errorf("opponents must be between 1 and 9, got %d", opponents)
	}
	return checkBoard([][]Card{hole}, board)
}

func checkBoard(hands [][]Card, board []Card) error {
	if len(board) > 5 {
		return fmt.Errorf("board has %d cards, at most 5 allowed", len(board))
	}
	var used Hand
	n := 0
	for _, cards := range append(slices.Clone(hands), board) {
		for _, c := range cards {
			if !c.Valid() {
				return errInvalidCard
			}
			used.AddCard(c)
			n++
		}
	}
	if used.CountCards() != n {
		return errors.New("duplicate cards")
	}
	return nil
}

// unused lists the cards not in used.
func unused(used Hand) []Card {
	pool := make([]Card, 0, 52-used.CountCards())
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			if c := NewCard(rank, suit); !used.HasCard(c) {
				pool = append(pool, c)
			}
		}
	}
	return pool
}

// draw moves n random cards to the front of pool.
func draw(pool []Card, n int, rng *rand.Rand) {
	for i := range n {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
}

type sampler struct {
	hole      []Card
	board     []Card
	opponents int
	pool      []Card
	full      []Card
}

func newSampler(hole, board []Card, opponents int) *sampler {
	used := NewHand(hole...)
	for _, c := range board {
		used.AddCard(c)
	}
	full := make([]Card, 5)
	copy(full, board)
	return &sampler{hole: hole, board: board, opponents: opponents, pool: unused(used), full: full}
}

func (s *sampler) run(samples int, rng *rand.Rand) EquityResult {
	missing := 5 - len(s.board)
	var res EquityResult
	for range samples {
		draw(s.pool, missing+2*s.opponents, rng)
		copy(s.full[len(s.board):], s.pool[:missing])
		opp := s.pool[missing:]

		mine := Evaluate(s.hole, s.full)
		best, tied := true, 1
		for k := range s.opponents {
			switch CompareHands(mine, Evaluate(opp[2*k:2*k+2], s.full)) {
			case 1:
				best = false
			case 0:
				tied++
			}
			if !best {
				break
			}
		}
		res.Samples++
		if !best {
			continue
		}
		if tied == 1 {
			res.Wins++
		} else {
			res.Ties++
		}
		res.Share += 1 / float64(tied)
	}
	return res
}

// Odds runs out the board for known hands and reports each hand's result.
func Odds(hands [][]Card, board []Card, samples int, rng *rand.Rand) ([]EquityResult, error) {
	if len(hands) < 2 {
		return nil, errors.New("need at least 2 hands")
	}
	for i, h := range hands {
		if len(h) != 2 {
			return nil, fmt.Errorf("hand %d: need 2 cards, got %d", i+1, len(h))
		}
	}
	if err := checkBoard(hands, board); err != nil {
		return nil, err
	}

	var used Hand
	for _, h := range hands {
		used |= NewHand(h...)
	}
	used |= NewHand(board...)
	pool := unused(used)
	full := make([]Card, 5)
	copy(full, board)
	missing := 5 - len(board)

	results := make([]EquityResult, len(hands))
	ranks := make([]HandRank, len(hands))
	for range samples {
		draw(pool, missing, rng)
		copy(full[len(board):], pool[:missing])

		best := WorstRank
		for i, h := range hands {
			ranks[i] = Evaluate(h, full)
			if ranks[i].Better(best) {
				best = ranks[i]
			}
		}
		winners := 0
		for _, r := range ranks {
			if r == best {
				winners++
			}
		}
		for i, r := range ranks {
			results[i].Samples++
			if r != best {
				continue
			}
			if winners == 1 {
				results[i].Wins++
			} else {
				results[i].Ties++
			}
			results[i].Share += 1 / float64(winners)
		}
	}
	return results, nil
}
