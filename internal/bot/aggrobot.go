package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/poker"
)

const (
	equitySamples = 64
	bluffRate     = 0.15
)

// AggroBot raises good starting hands, bets made hands for value and bluffs
// a fraction of the time.
type AggroBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewAggroBot creates an AggroBot.
func NewAggroBot(rng *rand.Rand, logger *log.Logger) *AggroBot {
	return &AggroBot{rng: rng, logger: logger}
}

func (b *AggroBot) Decide(v game.View) game.Action {
	if len(v.Hole) != 2 {
		return game.CheckOrFold(v.Legal)
	}
	var (
		a      game.Action
		reason string
	)
	if v.Street == game.Preflop {
		a, reason = b.preflop(v)
	} else {
		a, reason = b.postflop(v)
	}
	b.logger.Debug("aggro-bot", "seat", v.Seat, "street", v.Street, "action", a, "reason", reason)
	return a
}

func (b *AggroBot) preflop(v game.View) (game.Action, string) {
	tier := poker.StartingTier(v.Hole[0], v.Hole[1])
	open := v.AmountToCall + 2*max(v.MinRaise, v.BigBlind)
	switch tier {
	case poker.TierPremium:
		return sizeTo(v, 2*open), "premium hand, raising big"
	case poker.TierStrong:
		return sizeTo(v, open), "strong hand, raising"
	case poker.TierPlayable:
		if v.ToCall <= 3*v.BigBlind {
			return checkOrCall(v), "playable hand, calling"
		}
	case poker.TierMarginal:
		if v.ToCall <= v.BigBlind {
			return checkOrCall(v), "marginal hand, limping"
		}
	}
	if b.rng.Float64() < bluffRate {
		return sizeTo(v, open), "bluff raise"
	}
	return game.CheckOrFold(v.Legal), tier.String() + " hand, giving up"
}

func (b *AggroBot) postflop(v game.View) (game.Action, string) {
	opponents := 0
	for _, s := range v.Seats {
		if s.Index != v.Seat && (s.Status == game.Active || s.Status == game.AllIn) {
			opponents++
		}
	}
	opponents = min(max(opponents, 1), 9)

	res, err := poker.Equity(v.Hole, v.Board, opponents, equitySamples, b.rng)
	if err != nil {
		b.logger.Warn("aggro-bot equity failed", "seat", v.Seat, "error", err)
		return checkOrCall(v), "no equity estimate"
	}
	equity := res.Equity()
	fair := 1 / float64(opponents+1)

	potBet := v.AmountToCall + v.Pot
	switch {
	case equity > min(0.75, 1.5*fair):
		return sizeTo(v, potBet), "strong made hand, pot sized"
	case equity > fair:
		if v.ToCall == 0 {
			return sizeTo(v, v.AmountToCall+v.Pot/2), "ahead, half pot"
		}
		return checkOrCall(v), "ahead, calling"
	case v.ToCall > 0 && float64(v.ToCall)/float64(v.Pot+v.ToCall) < equity:
		return checkOrCall(v), "priced in"
	}
	if v.ToCall == 0 && b.rng.Float64() < bluffRate {
		return sizeTo(v, v.Pot/2), "bluff"
	}
	return game.CheckOrFold(v.Legal), "behind"
}
