package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
)

// RandBot picks uniformly among legal actions, with a random size for bets
// and raises.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a RandBot.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(v game.View) game.Action {
	if len(v.Legal) == 0 {
		return game.Action{Type: game.Fold}
	}
	la := v.Legal[r.rng.IntN(len(v.Legal))]
	a := game.Action{Type: la.Type}
	if la.Type == game.Bet || la.Type == game.Raise {
		a.Amount = la.Min
		if la.Max > la.Min {
			a.Amount += r.rng.IntN(la.Max - la.Min + 1)
		}
	}
	r.logger.Debug("rand-bot", "seat", v.Seat, "action", a)
	return a
}
