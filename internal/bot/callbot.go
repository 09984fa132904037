package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/holdem-engine/internal/game"
)

// CallBot is a calling station: it checks or calls every street and never
// raises. Short stacks facing an unraised pot shove instead.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a CallBot.
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(v game.View) game.Action {
	if v.BigBlind > 0 && v.Stack+v.Bet < 10*v.BigBlind && v.Can(game.AllIn) && v.AmountToCall <= v.BigBlind {
		c.logger.Debug("call-bot shoving short stack", "seat", v.Seat, "stack", v.Stack)
		return game.Action{Type: game.AllIn}
	}
	a := checkOrCall(v)
	c.logger.Debug("call-bot", "seat", v.Seat, "action", a, "toCall", v.ToCall)
	return a
}
