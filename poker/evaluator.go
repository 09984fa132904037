package poker

import (
	"fmt"
	"math"

	ph "github.com/paulhankin/poker"
)

// HandRank orders made hands. Lower is stronger.
type HandRank int32

// WorstRank is weaker than any real hand.
const WorstRank HandRank = math.MaxInt32

// Better reports whether r beats other.
func (r HandRank) Better(other HandRank) bool {
	return r < other
}

// CompareHands returns -1 if a beats b, 1 if b beats a, 0 on a tie.
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func toPH(c Card) ph.Card {
	var s ph.Suit
	switch c.Suit() {
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	default:
		s = ph.Spade
	}
	// library ranks run 1..13 with the ace as 1
	r := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		r = 1
	}
	card, _ := ph.MakeCard(s, r)
	return card
}

// Evaluate scores the best five-card hand from hole plus board.
// Fewer than five cards in total yields WorstRank.
func Evaluate(hole, board []Card) HandRank {
	all := make([]ph.Card, 0, len(hole)+len(board))
	for _, c := range hole {
		all = append(all, toPH(c))
	}
	for _, c := range board {
		all = append(all, toPH(c))
	}

	switch len(all) {
	case 7:
		var a [7]ph.Card
		copy(a[:], all)
		return fromScore(ph.Eval7(&a))
	case 5:
		var a [5]ph.Card
		copy(a[:], all)
		return fromScore(ph.Eval5(&a))
	case 6:
		return fromScore(bestOfSix(all))
	}
	return WorstRank
}

// library scores are higher-is-better
func fromScore(s int16) HandRank {
	return HandRank(-int32(s))
}

func bestOfSix(cards []ph.Card) int16 {
	best, _ := bestFiveOfSix(cards)
	return best
}

func bestFiveOfSix(cards []ph.Card) (int16, [5]ph.Card) {
	best := int16(math.MinInt16)
	var bestFive, five [5]ph.Card
	for skip := range cards {
		k := 0
		for i, c := range cards {
			if i != skip {
				five[k] = c
				k++
			}
		}
		if s := ph.Eval5(&five); s > best {
			best, bestFive = s, five
		}
	}
	return best, bestFive
}

// Describe names the best hand formed by cards, e.g. "pair of kings".
func Describe(cards []Card) (string, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return "", fmt.Errorf("describe: need 5 to 7 cards, got %d", len(cards))
	}
	pcs := make([]ph.Card, len(cards))
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	if len(pcs) == 6 {
		_, five := bestFiveOfSix(pcs)
		pcs = five[:]
	}
	return ph.Describe(pcs)
}
