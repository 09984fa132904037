// Package statistics accumulates per-player results over many hands.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/holdem-engine/internal/game"
)

// HandResult is one player's outcome from one hand.
type HandResult struct {
	NetBB    float64       // chips won or lost, in big blinds
	Showdown bool          // hand reached showdown
	Position game.Position // seat label for the hand
	PotBB    float64       // final pot in big blinds
}

// PositionStats tracks results from one seat label.
type PositionStats struct {
	Hands int
	SumBB float64
}

// Mean is bb/hand from this position.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// BigPotBB is the pot size counted as a big pot.
const BigPotBB = 50

// Statistics is a running summary of HandResults. The zero value is ready
// to use. It is not safe for concurrent use.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64
	Values []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64

	Positions map[game.Position]PositionStats

	MaxPotBB  float64
	BigPots   int
	BigPotsBB float64
}

// Add records one hand.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.Showdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if s.Positions == nil {
		s.Positions = map[game.Position]PositionStats{}
	}
	ps := s.Positions[r.Position]
	ps.Hands++
	ps.SumBB += r.NetBB
	s.Positions[r.Position] = ps

	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
	if r.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumBB += other.SumBB
	s.SumBB2 += other.SumBB2
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownBB += other.ShowdownBB
	s.NonShowdownBB += other.NonShowdownBB
	if len(other.Positions) > 0 && s.Positions == nil {
		s.Positions = map[game.Position]PositionStats{}
	}
	for pos, ps := range other.Positions {
		cur := s.Positions[pos]
		cur.Hands += ps.Hands
		cur.SumBB += ps.SumBB
		s.Positions[pos] = cur
	}
	s.MaxPotBB = max(s.MaxPotBB, other.MaxPotBB)
	s.BigPots += other.BigPots
	s.BigPotsBB += other.BigPotsBB
}

// Mean returns bb/hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance is the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	margin := 1.96 * s.StdError()
	return s.Mean() - margin, s.Mean() + margin
}

// Median of all recorded results.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile interpolates the value at p in [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the running totals agree with each other.
func (s *Statistics) Validate() error {
	if diff := s.SumBB - s.ShowdownBB - s.NonShowdownBB; math.Abs(diff) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f showdown=%.6f non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("recorded %d values for %d hands", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	positioned := 0
	for _, ps := range s.Positions {
		positioned += ps.Hands
	}
	if positioned != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positioned, s.Hands)
	}
	return nil
}
