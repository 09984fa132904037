package poker

import "math"

// Tier buckets starting hands by preflop strength.
type Tier int

const (
	TierTrash Tier = iota
	TierMarginal
	TierPlayable
	TierStrong
	TierPremium
)

func (t Tier) String() string {
	switch t {
	case TierPremium:
		return "premium"
	case TierStrong:
		return "strong"
	case TierPlayable:
		return "playable"
	case TierMarginal:
		return "marginal"
	}
	return "trash"
}

// ChenScore scores two hole cards with the Chen formula. Invalid input scores 0.
func ChenScore(a, b Card) int {
	if !a.Valid() || !b.Valid() || a == b {
		return 0
	}
	hi, lo := a.Rank(), b.Rank()
	if lo > hi {
		hi, lo = lo, hi
	}

	score := chenValue(hi)
	if hi == lo {
		score = math.Max(score*2, 5)
		return int(math.Ceil(score))
	}
	if a.Suit() == b.Suit() {
		score += 2
	}

	gap := int(hi-lo) - 1
	switch {
	case gap == 1:
		score--
	case gap == 2:
		score -= 2
	case gap == 3:
		score -= 4
	case gap >= 4:
		score -= 5
	}
	if gap <= 1 && hi < Queen {
		score++
	}
	return int(math.Ceil(score))
}

func chenValue(rank uint8) float64 {
	switch rank {
	case Ace:
		return 10
	case King:
		return 8
	case Queen:
		return 7
	case Jack:
		return 6
	}
	return float64(rank+2) / 2
}

// StartingTier maps hole cards to a Tier.
func StartingTier(a, b Card) Tier {
	switch s := ChenScore(a, b); {
	case s >= 12:
		return TierPremium
	case s >= 10:
		return TierStrong
	case s >= 8:
		return TierPlayable
	case s >= 6:
		return TierMarginal
	}
	return TierTrash
}
