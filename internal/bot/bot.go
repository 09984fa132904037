// Package bot provides built-in decision policies for seats without a human.
package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
)

// Strategies lists the names accepted by New.
var Strategies = []string{"fold", "call", "random", "aggressive"}

// New builds the named strategy. rng is used by the strategies that
// randomise; logger receives decision reasoning at debug level.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch strings.ToLower(strategy) {
	case "fold":
		return NewFoldBot(logger), nil
	case "call":
		return NewCallBot(logger), nil
	case "random":
		return NewRandBot(rng, logger), nil
	case "aggressive":
		return NewAggroBot(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %s)", strategy, strings.Join(Strategies, ", "))
}

// Valid reports whether New accepts strategy.
func Valid(strategy string) bool {
	return slices.Contains(Strategies, strings.ToLower(strategy))
}

// choose returns the preferred action if it is legal, falling back to
// check or fold.
func choose(v game.View, preferred game.ActionType, amount int) game.Action {
	la, ok := v.Bounds(preferred)
	if !ok {
		return game.CheckOrFold(v.Legal)
	}
	a := game.Action{Type: preferred}
	if preferred == game.Bet || preferred == game.Raise {
		a.Amount = min(max(amount, la.Min), la.Max)
	}
	return a
}

// sizeTo bets or raises to the given street total, clamped to what is legal.
// Without a bet or raise available it calls, or checks when nothing is owed.
func sizeTo(v game.View, total int) game.Action {
	switch {
	case v.Can(game.Raise):
		return choose(v, game.Raise, total)
	case v.Can(game.Bet):
		return choose(v, game.Bet, total)
	case v.Can(game.Call):
		return game.Action{Type: game.Call}
	}
	return game.CheckOrFold(v.Legal)
}

func checkOrCall(v game.View) game.Action {
	if v.Can(game.Check) {
		return game.Action{Type: game.Check}
	}
	if v.Can(game.Call) {
		return game.Action{Type: game.Call}
	}
	return game.Action{Type: game.Fold}
}
